// Package driver is the run-level orchestrator (component R): it discovers
// files, dispatches each to a per-kind loader, freezes the catalog, and
// then walks every loaded item through the trigger/effect validator in a
// fixed order. It implements spec §6's external-interface contract without
// itself containing any analysis logic — that all lives in validate,
// scope, tables, and catalog.
package driver

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/hallowmark/scriptguard/internal/assets"
	"github.com/hallowmark/scriptguard/internal/catalog"
	"github.com/hallowmark/scriptguard/internal/codechain"
	"github.com/hallowmark/scriptguard/internal/diag"
	"github.com/hallowmark/scriptguard/internal/fileset"
	"github.com/hallowmark/scriptguard/internal/gamevariant"
	"github.com/hallowmark/scriptguard/internal/logger"
	"github.com/hallowmark/scriptguard/internal/scope"
	"github.com/hallowmark/scriptguard/internal/script"
	"github.com/hallowmark/scriptguard/internal/tables"
	"github.com/hallowmark/scriptguard/internal/token"
	"github.com/hallowmark/scriptguard/internal/validate"
)

// Options is everything one analyzer run needs: where to read from, which
// variant's tables to validate against, where diagnostics and the run log
// go, and the only_born cutoff.
type Options struct {
	VanillaRoot   string
	ModRoots      []string
	Variant       gamevariant.Variant
	Sink          diag.Sink
	Logger        *logger.RunLogger
	MaxMacroDepth int
	OnlyBornAfter string
}

// Result summarizes one completed run for the CLI to report and the caller
// to decide an exit code from.
type Result struct {
	FilesProcessed        int
	DiagnosticsBySeverity map[string]int
	Elapsed               time.Duration
}

// Run executes one full pass: discover, load, freeze, validate.
func Run(opts Options) (Result, error) {
	start := time.Now()
	res := Result{DiagnosticsBySeverity: map[string]int{}}

	files, err := fileset.Discover(opts.VanillaRoot, opts.ModRoots)
	if err != nil {
		return res, fmt.Errorf("discovering files: %w", err)
	}

	cat := catalog.New()
	cutoff, _ := catalog.ParseDate(opts.OnlyBornAfter)
	loadEnv := &catalog.LoadEnv{Catalog: cat, Variant: opts.Variant, Sink: opts.Sink, OnlyBornAfter: cutoff}
	variantSet := gamevariant.Of(opts.Variant)

	for _, f := range files {
		fileStart := time.Now()
		fileSink := &diag.Collecting{}
		loadEnv.Sink = fileSink
		n, ferr := loadFile(loadEnv, f, variantSet, fileSink)
		loadEnv.Sink = opts.Sink
		if opts.Sink != nil {
			for _, d := range fileSink.Diagnostics {
				opts.Sink.Report(d)
			}
		}
		res.FilesProcessed++
		res.DiagnosticsBySeverity["loaded"] += n
		if opts.Logger != nil {
			event := logger.FileEvent{
				Timestamp:   time.Now().UTC().Format(time.RFC3339),
				Path:        f.RelPath,
				Overlay:     f.Kind.String(),
				Diagnostics: len(fileSink.Diagnostics),
				ElapsedMS:   time.Since(fileStart).Milliseconds(),
			}
			if ferr != nil {
				event.Error = ferr.Error()
			}
			if logErr := opts.Logger.LogFile(event); logErr != nil {
				fmt.Fprintf(os.Stderr, "[scriptguard] warning: failed to write file log: %v\n", logErr)
			}
		}
	}

	cat.Freeze()

	catalog.ValidateLegions(loadEnv)
	catalog.ValidateTechnologies(loadEnv)

	maxDepth := opts.MaxMacroDepth
	if maxDepth <= 0 {
		maxDepth = validate.DefaultMaxMacroDepth
	}
	env := &validate.Env{Catalog: cat, Variant: opts.Variant, Sink: opts.Sink, MaxMacroDepth: maxDepth}
	validateCatalog(env, cat, cutoff)

	res.Elapsed = time.Since(start)
	return res, nil
}

// loadFile parses (or, for non-script formats, directly reads) one
// discovered file and dispatches every top-level item to its kind's
// loader. It returns the number of top-level items registered.
func loadFile(env *catalog.LoadEnv, f fileset.File, variant gamevariant.Set, sink diag.Sink) (int, error) {
	kind, ok := catalog.KindForPath(f.RelPath, variant)
	if !ok {
		return 0, nil
	}

	meta := catalog.MetaFor(kind)
	if meta.PathPrefix == "localization/" {
		return loadLocalizationFile(env, f, sink)
	}
	if kind == catalog.Province {
		return loadProvinceFile(env, f, sink)
	}

	data, err := os.ReadFile(f.AbsPath)
	if err != nil {
		if sink != nil {
			sink.Report(diag.Diagnostic{
				Severity: diag.Error, Confidence: diag.Strong, Key: diag.KeyReadError,
				Loc:     token.Location{File: f.AbsPath, Kind: f.Kind, ModLayer: f.ModLayer},
				Message: "reading file: " + err.Error(),
			})
		}
		return 0, err
	}

	root := script.Parse(f.AbsPath, string(data), f.Kind, f.ModLayer, sink)
	count := 0

	if kind == catalog.Event {
		namespace := ""
		if field, ok := root.FieldNamed("namespace"); ok {
			if tok, ok := field.Value.AsToken(); ok {
				namespace = tok.Text
			}
		}
		for _, field := range root.Fields() {
			nested, ok := field.Value.AsBlock()
			if !ok {
				continue
			}
			catalog.LoadEventInNamespace(env, field.Key, nested, namespace)
			count++
		}
		return count, nil
	}

	loader := catalog.LoaderFor(kind)
	for _, field := range root.Fields() {
		nested, ok := field.Value.AsBlock()
		if !ok {
			continue
		}
		loader(env, field.Key, nested)
		count++
	}
	return count, nil
}

func loadLocalizationFile(env *catalog.LoadEnv, f fileset.File, sink diag.Sink) (int, error) {
	entries, err := assets.LoadLocalization(f.AbsPath)
	if err != nil {
		if sink != nil {
			sink.Report(diag.Diagnostic{
				Severity: diag.Warning, Confidence: diag.Reasonable, Key: diag.KeyReadError,
				Loc:     token.Location{File: f.AbsPath, Kind: f.Kind, ModLayer: f.ModLayer},
				Message: "reading localization file: " + err.Error(),
			})
		}
		return 0, err
	}
	for _, e := range entries {
		loc := token.Location{File: f.AbsPath, Line: e.Line, Kind: f.Kind, ModLayer: f.ModLayer}
		keyTok := token.New(e.Key, token.Bare, loc)
		env.Catalog.Register(catalog.Localization, e.Key, keyTok, nil, sink)
		codechain.ValidateText(e.Value, tables.DTCharacter, loc, sink)
	}
	return len(entries), nil
}

func loadProvinceFile(env *catalog.LoadEnv, f fileset.File, sink diag.Sink) (int, error) {
	provinces, err := assets.LoadProvinces(f.AbsPath)
	if err != nil {
		if sink != nil {
			sink.Report(diag.Diagnostic{
				Severity: diag.Warning, Confidence: diag.Reasonable, Key: diag.KeyReadError,
				Loc:     token.Location{File: f.AbsPath, Kind: f.Kind, ModLayer: f.ModLayer},
				Message: "reading province definitions: " + err.Error(),
			})
		}
		return 0, err
	}
	for _, p := range provinces {
		loc := token.Location{File: f.AbsPath, Line: p.Line, Kind: f.Kind, ModLayer: f.ModLayer}
		key := fmt.Sprintf("%d", p.ID)
		keyTok := token.New(key, token.Number, loc)
		env.Catalog.Register(catalog.Province, key, keyTok, nil, sink)
	}
	return len(provinces), nil
}

// plan describes how a Kind's block maps onto the trigger/effect validator:
// which sub-fields are triggers, which are effects, and what the item's
// implicit root subject is. Kinds with no plan are registered but not
// themselves walked by the validator — a deliberate, documented limit on
// how deep the representative wiring goes (spec §1's per-kind content is
// explicitly out of scope; this is the shape, not the full table).
type plan struct {
	root          scope.Set
	triggerFields []string
	// cappedTriggerFields are trigger fields validated through
	// validate.ValidateTriggerCapped rather than ValidateTrigger: their
	// failure only hides the item from the player rather than indicating a
	// broken reference or a crash, so diagnostics more severe than the cap
	// are demoted to diag.Warning instead of reporting at their descriptor's
	// natural severity (grounded on original_source's validate_trigger_
	// max_sev, "used to validate triggers in item definitions that don't
	// warrant the Error level").
	cappedTriggerFields []string
	effectFields        []string
	selfIsTrigger       bool
	selfIsEffect        bool
}

var plans = map[catalog.Kind]plan{
	catalog.Character:       {root: scope.Character},
	catalog.Trait:           {root: scope.Character, triggerFields: []string{"potential", "allowed", "allowed_for_creation"}},
	catalog.LandedTitle:     {root: scope.LandedTitle, triggerFields: []string{"allow"}},
	catalog.Event:           {root: scope.Character, triggerFields: []string{"trigger"}, effectFields: []string{"immediate", "after"}},
	catalog.Decision:        {root: scope.Character, cappedTriggerFields: []string{"is_shown"}, triggerFields: []string{"is_valid", "allow"}, effectFields: []string{"effect"}},
	catalog.OnAction:        {root: scope.Character, triggerFields: []string{"trigger"}, effectFields: []string{"effect"}},
	catalog.ScriptedTrigger: {root: scope.Character, selfIsTrigger: true},
	catalog.ScriptedEffect:  {root: scope.Character, selfIsEffect: true},
}

// validationOrder fixes the sequence items are validated in: definitions
// other kinds reference (scripted triggers/effects, traits) before the
// items that call into them, so a macro-cycle's first bad expansion is
// reported against the most useful anchor.
var validationOrder = []catalog.Kind{
	catalog.ScriptedTrigger,
	catalog.ScriptedEffect,
	catalog.ScriptedValue,
	catalog.Trait,
	catalog.LandedTitle,
	catalog.OnAction,
	catalog.Decision,
	catalog.Event,
	catalog.Character,
}

func validateCatalog(env *validate.Env, cat *catalog.Catalog, cutoff catalog.Date) {
	for _, kind := range validationOrder {
		keys := cat.Keys(kind)
		sort.Strings(keys)
		for _, key := range keys {
			def, ok := cat.Get(kind, key)
			if !ok || def.Block == nil {
				continue
			}
			validateItem(env, kind, def, cutoff)
		}
	}
}

func validateItem(env *validate.Env, kind catalog.Kind, def catalog.Definition, cutoff catalog.Date) {
	p, ok := plans[kind]
	if !ok {
		return
	}

	ctx := scope.New(p.root, def.KeyToken, env.Sink)
	flags := validate.RootFlags()

	if p.selfIsTrigger {
		validate.ValidateTrigger(env, ctx, def.Block, flags)
		return
	}
	if p.selfIsEffect {
		validate.ValidateEffect(env, ctx, def.Block, flags)
		return
	}

	for _, name := range p.triggerFields {
		for _, field := range def.Block.FieldsNamed(name) {
			if nested, ok := field.Value.AsBlock(); ok {
				validate.ValidateTrigger(env, ctx, nested, flags)
			}
		}
	}
	for _, name := range p.cappedTriggerFields {
		for _, field := range def.Block.FieldsNamed(name) {
			if nested, ok := field.Value.AsBlock(); ok {
				validate.ValidateTriggerCapped(env, ctx, nested, flags, diag.Warning)
			}
		}
	}
	for _, name := range p.effectFields {
		for _, field := range def.Block.FieldsNamed(name) {
			if nested, ok := field.Value.AsBlock(); ok {
				validate.ValidateEffect(env, ctx, nested, flags)
			}
		}
	}

	if kind == catalog.Character {
		validateCharacterHistory(env, ctx, def.Block, flags, cutoff)
	}
}

// validateCharacterHistory walks a character's date-keyed bare sub-blocks
// (`800.1.1 = { ... }`) as effect bodies, skipping any entry whose date
// predates the only_born cutoff — the general form of original_source's
// config_only_born filter, extended from "skip the whole character" to
// "skip the history entries that wouldn't have fired yet" so a character
// born before the cutoff with a later, in-range history entry is still
// checked.
func validateCharacterHistory(env *validate.Env, ctx *scope.Context, block *script.Block, flags validate.Flags, cutoff catalog.Date) {
	for _, field := range block.Fields() {
		if field.Key.Kind != token.Date {
			continue
		}
		if cutoff.Set {
			d, ok := catalog.ParseDate(field.Key.Text)
			if ok && d.Before(cutoff) {
				continue
			}
		}
		if nested, ok := field.Value.AsBlock(); ok {
			validate.ValidateEffect(env, ctx, nested, flags)
		}
	}
}
