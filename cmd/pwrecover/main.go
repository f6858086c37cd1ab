// Command pwrecover trains n-gram password models and recovers plaintexts
// from password digests by Markov generation, brute force or wordlist.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"
	"time"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"

	"github.com/hasbyte1/go-pwrecover/corpus"
	"github.com/hasbyte1/go-pwrecover/crack"
	"github.com/hasbyte1/go-pwrecover/encryption"
	"github.com/hasbyte1/go-pwrecover/hashing"
	"github.com/hasbyte1/go-pwrecover/markov"
	"github.com/hasbyte1/go-pwrecover/prng"
)

// noColor disables ANSI colour in console logs. It is set on Windows
// consoles that cannot enable virtual terminal processing.
var noColor bool

// Globals are the flags shared by every command.
type Globals struct {
	LogLevel          string   `name:"log-level" enum:"trace,debug,info,warn,error" default:"info" env:"PWRECOVER_LOG_LEVEL" help:"Log level (${enum})."`
	LogJSON           bool     `name:"log-json" env:"PWRECOVER_LOG_JSON" help:"Write JSON logs instead of console output."`
	ModelKey          string   `name:"model-key" env:"PWRECOVER_MODEL_KEY" placeholder:"KEY" help:"Base64 AES-256 key sealing model files."`
	PreviousModelKeys []string `name:"previous-model-key" env:"PWRECOVER_PREVIOUS_MODEL_KEYS" sep:"," placeholder:"KEY" help:"Retired keys still accepted when opening models."`
}

// CLI is the kong command tree.
type CLI struct {
	Globals

	Train      TrainCmd      `cmd:"" help:"Train a Markov model from a password corpus."`
	Evaluate   EvaluateCmd   `cmd:"" help:"Cross-validate model orders on a corpus."`
	Markov     MarkovCmd     `cmd:"" help:"Recover targets with candidates generated from a model."`
	Brute      BruteCmd      `cmd:"" help:"Recover targets by exhaustive enumeration."`
	Dict       DictCmd       `cmd:"" help:"Recover targets from a wordlist."`
	Algorithms AlgorithmsCmd `cmd:"" help:"List supported hash algorithms."`
	Keygen     KeygenCmd     `cmd:"" help:"Print a new model sealing key."`
}

// app carries what every command needs at run time.
type app struct {
	ctx    context.Context
	log    zerolog.Logger
	stdout io.Writer
	stderr io.Writer
	sealer markov.Sealer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("pwrecover"),
		kong.Description("Password model training and digest recovery."),
		kong.Writers(stdout, stderr),
		kong.UsageOnError(),
		kong.Vars{"alphabet": crack.DefaultAlphabet},
	)
	if err != nil {
		fmt.Fprintf(stderr, "pwrecover: %v\n", err)
		return 2
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "pwrecover: %v\n", err)
		return 2
	}

	log, err := newLogger(stderr, cli.LogLevel, cli.LogJSON)
	if err != nil {
		fmt.Fprintf(stderr, "pwrecover: %v\n", err)
		return 2
	}
	sealer, err := cli.sealer()
	if err != nil {
		log.Error().Err(err).Msg("invalid model key")
		return 2
	}

	a := &app{ctx: ctx, log: log, stdout: stdout, stderr: stderr, sealer: sealer}
	if err := kctx.Run(a); err != nil {
		log.Error().Err(err).Str("command", kctx.Command()).Msg("command failed")
		return 1
	}
	return 0
}

func newLogger(w io.Writer, level string, asJSON bool) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}
	out := w
	if !asJSON {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: noColor}
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}

// sealer returns nil when no model key is configured.
func (g *Globals) sealer() (markov.Sealer, error) {
	if g.ModelKey == "" {
		return nil, nil
	}
	key, err := encryption.DecodeKey(g.ModelKey)
	if err != nil {
		return nil, err
	}
	previous := make([][]byte, 0, len(g.PreviousModelKeys))
	for _, k := range g.PreviousModelKeys {
		old, err := encryption.DecodeKey(k)
		if err != nil {
			return nil, fmt.Errorf("previous key: %w", err)
		}
		previous = append(previous, old)
	}
	s, err := encryption.NewSealer(key, encryption.WithPreviousKeys(previous...))
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Model commands
// ──────────────────────────────────────────────────────────────────────────────

// TrainCmd builds a model from one or more corpus files.
type TrainCmd struct {
	Corpus []string `arg:"" name:"corpus" help:"Corpus files, one password per line."`
	Order  int      `short:"n" default:"3" env:"PWRECOVER_ORDER" help:"Maximum context length."`
	Model  string   `short:"m" required:"" type:"path" help:"Where to write the model."`
}

func (c *TrainCmd) Run(a *app) error {
	b, err := markov.NewBuilder(c.Order)
	if err != nil {
		return err
	}
	for _, path := range c.Corpus {
		lines, err := corpus.ReadFile(path)
		if err != nil {
			return err
		}
		if err := b.AddAll(lines); err != nil {
			return err
		}
		a.log.Debug().Str("corpus", path).Int("lines", len(lines)).Msg("corpus loaded")
	}
	chain, err := b.Build()
	if err != nil {
		return err
	}
	if err := markov.Save(c.Model, chain, a.sealer); err != nil {
		return err
	}
	a.log.Info().
		Str("model", c.Model).
		Int("order", chain.Order()).
		Int("contexts", chain.Len()).
		Int("strings", b.Strings()).
		Bool("sealed", a.sealer != nil).
		Msg("model saved")
	fmt.Fprintf(a.stdout, "order %d model with %d contexts from %d strings written to %s\n",
		chain.Order(), chain.Len(), b.Strings(), c.Model)
	return nil
}

// EvaluateCmd reports held-out bits per symbol for each requested order.
type EvaluateCmd struct {
	Corpus string `arg:"" type:"existingfile" help:"Corpus file, one password per line."`
	Orders []int  `short:"n" name:"order" default:"1,2,3" help:"Orders to evaluate."`
	Folds  int    `short:"k" default:"5" env:"PWRECOVER_FOLDS" help:"Number of folds."`
	Seed   uint64 `help:"Shuffle seed. Zero picks a random seed."`
}

func (c *EvaluateCmd) Run(a *app) error {
	lines, err := corpus.ReadFile(c.Corpus)
	if err != nil {
		return err
	}
	folds, err := corpus.Partition(lines, c.Folds, c.rng())
	if err != nil {
		return err
	}
	w := bufio.NewWriter(a.stdout)
	fmt.Fprintf(w, "%-6s %-5s %8s %8s %9s %12s %7s\n", "order", "fold", "train", "held", "contexts", "bits/symbol", "unseen")
	for _, order := range c.Orders {
		ev, err := markov.CrossValidate(folds, order)
		if err != nil {
			return err
		}
		for _, f := range ev.Folds {
			fmt.Fprintf(w, "%-6d %-5d %8d %8d %9d %12.4f %7d\n",
				order, f.Fold, f.Train, f.Held, f.Contexts, f.Score.BitsPerSymbol(), f.Score.Unseen)
		}
		fmt.Fprintf(w, "%-6d mean %.4f stddev %.4f\n", order, ev.Mean, ev.StdDev)
		a.log.Debug().Int("order", order).Float64("mean", ev.Mean).Float64("stddev", ev.StdDev).Msg("order evaluated")
	}
	return w.Flush()
}

func (c *EvaluateCmd) rng() *rand.Rand {
	if c.Seed == 0 {
		return nil
	}
	return prng.NewRand(c.Seed, 0)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cracking commands
// ──────────────────────────────────────────────────────────────────────────────

// CrackFlags are shared by the cracking commands.
type CrackFlags struct {
	Algorithm   string `short:"a" default:"sha512" env:"PWRECOVER_ALGORITHM" help:"Digest applied to candidates for hex targets."`
	MaxAttempts int    `name:"max-attempts" help:"Stop after this many draws. Zero means the command default."`
	Output      string `short:"o" type:"path" help:"Write recovered targets here instead of stdout."`
	Progress    bool   `default:"true" negatable:"" help:"Show a progress bar on stderr."`
}

func (f *CrackFlags) options(a *app, strategy string, base crack.Options) crack.Options {
	base.Algorithm = hashing.Algorithm(f.Algorithm)
	base.MaxAttempts = f.MaxAttempts
	base.Strategy = strategy
	log := a.log
	base.Logger = &log
	return base
}

// MarkovCmd generates candidates from a trained model.
type MarkovCmd struct {
	Model   string `arg:"" type:"existingfile" help:"Model written by train."`
	Targets string `arg:"" type:"existingfile" help:"Targets: digest, digest:salt or encoded hash per line."`
	CrackFlags

	MaxCandidates int    `name:"max-candidates" default:"1000000" env:"PWRECOVER_MAX_CANDIDATES" help:"Stop after this many distinct candidates."`
	Workers       int    `short:"w" default:"1" env:"PWRECOVER_WORKERS" help:"Generator goroutines."`
	Seed          uint64 `help:"Generator seed. Zero picks a random seed."`
	Order         int    `help:"Context length for generation. Zero uses the model order."`
	MaxLength     int    `name:"max-length" default:"100" help:"Draws per generated password, terminator included."`
	Dedup         bool   `default:"true" negatable:"" help:"Skip candidates already hashed."`
}

func (c *MarkovCmd) Run(a *app) error {
	chain, err := markov.Load(c.Model, a.sealer)
	if err != nil {
		return err
	}
	targets, err := crack.ReadTargets(c.Targets)
	if err != nil {
		return err
	}
	opts := crack.DefaultMarkovOptions()
	opts.Options = c.options(a, "markov", opts.Options)
	opts.MaxCandidates = c.MaxCandidates
	opts.Dedup = c.Dedup
	opts.Workers = c.Workers
	opts.Seed = c.Seed
	opts.Generator = markov.GeneratorOptions{Order: c.Order, MaxLength: c.MaxLength}

	bar := a.progress(c.Progress, int64(c.MaxCandidates), "markov")
	opts.Progress = bar.update
	rep, err := crack.CrackMarkov(a.ctx, chain, targets, opts)
	bar.done()
	if err != nil {
		return err
	}
	return a.report(rep, targets, c.Output)
}

// BruteCmd enumerates every string over an alphabet.
type BruteCmd struct {
	Targets string `arg:"" type:"existingfile" help:"Targets: digest, digest:salt or encoded hash per line."`
	CrackFlags

	Alphabet      string `default:"${alphabet}" env:"PWRECOVER_ALPHABET" help:"Characters to enumerate."`
	MinLength     int    `name:"min-length" default:"0" help:"Shortest candidate."`
	MaxLength     int    `name:"max-length" default:"6" help:"Longest candidate."`
	MaxCandidates int    `name:"max-candidates" help:"Stop after this many candidates. Zero means unbounded."`
}

func (c *BruteCmd) Run(a *app) error {
	targets, err := crack.ReadTargets(c.Targets)
	if err != nil {
		return err
	}
	opts := crack.DefaultBruteOptions()
	opts.Options = c.options(a, "brute-force", opts.Options)
	opts.MaxCandidates = c.MaxCandidates
	opts.Alphabet = c.Alphabet
	opts.MinLength = c.MinLength
	opts.MaxLength = c.MaxLength

	total := int64(-1)
	if src, err := crack.NewShortlex(c.Alphabet, c.MinLength, c.MaxLength); err == nil {
		if n, ok := src.Total(); ok && n <= 1<<62 {
			total = int64(n)
		}
	}
	if c.MaxCandidates > 0 && (total < 0 || int64(c.MaxCandidates) < total) {
		total = int64(c.MaxCandidates)
	}

	bar := a.progress(c.Progress, total, "brute-force")
	opts.Progress = bar.update
	rep, err := crack.CrackBrute(a.ctx, targets, opts)
	bar.done()
	if err != nil {
		return err
	}
	return a.report(rep, targets, c.Output)
}

// DictCmd hashes every word of a wordlist.
type DictCmd struct {
	Wordlist string `arg:"" type:"existingfile" help:"Wordlist, one candidate per line."`
	Targets  string `arg:"" type:"existingfile" help:"Targets: digest, digest:salt or encoded hash per line."`
	CrackFlags
}

func (c *DictCmd) Run(a *app) error {
	words, err := crack.ReadWordlist(c.Wordlist)
	if err != nil {
		return err
	}
	targets, err := crack.ReadTargets(c.Targets)
	if err != nil {
		return err
	}
	opts := crack.DefaultDictionaryOptions()
	opts.Options = c.options(a, "dictionary", opts.Options)

	bar := a.progress(c.Progress, int64(words.Len()), "dictionary")
	opts.Progress = bar.update
	rep, err := crack.CrackDictionary(a.ctx, words, targets, opts)
	bar.done()
	if err != nil {
		return err
	}
	return a.report(rep, targets, c.Output)
}

// report writes every recovered target as "target:plaintext".
func (a *app) report(rep *crack.Report, targets []crack.Target, output string) (err error) {
	out := a.stdout
	if output != "" {
		f, ferr := os.Create(output)
		if ferr != nil {
			return ferr
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		out = f
	}
	w := bufio.NewWriter(out)
	for i, r := range rep.Results {
		if r.Found {
			fmt.Fprintf(w, "%s:%s\n", targets[i], r.Plaintext)
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(a.stderr, "%d/%d recovered, stopped: %s, %d candidates in %s\n",
		rep.Resolved, len(rep.Results), rep.Stop, rep.Candidates, rep.Elapsed.Round(time.Millisecond))
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Progress
// ──────────────────────────────────────────────────────────────────────────────

type progress struct {
	bar *progressbar.ProgressBar
	key string
}

// progress returns a bar counting candidates toward max. A negative max
// renders a spinner. The returned value is inert when disabled.
func (a *app) progress(enabled bool, max int64, key string) *progress {
	if !enabled {
		return &progress{}
	}
	return &progress{
		key: key,
		bar: progressbar.NewOptions64(max,
			progressbar.OptionSetWriter(a.stderr),
			progressbar.OptionSetDescription(key),
			progressbar.OptionSetPredictTime(true),
			progressbar.OptionShowDescriptionAtLineEnd(),
			progressbar.OptionSetRenderBlankState(true),
			progressbar.OptionThrottle(500*time.Millisecond),
			progressbar.OptionShowElapsedTimeOnFinish(),
			progressbar.OptionSetWidth(25),
			progressbar.OptionShowIts(),
			progressbar.OptionShowCount(),
		),
	}
}

func (p *progress) update(s crack.Progress) {
	if p.bar == nil {
		return
	}
	_ = p.bar.Set64(int64(s.Candidates))
	p.bar.Describe(fmt.Sprintf("%s %d/%d", p.key, s.Resolved, s.Targets))
}

func (p *progress) done() {
	if p.bar == nil {
		return
	}
	_ = p.bar.Exit()
}

// ──────────────────────────────────────────────────────────────────────────────
// Utility commands
// ──────────────────────────────────────────────────────────────────────────────

// AlgorithmsCmd lists the registered digests and verifiers.
type AlgorithmsCmd struct{}

func (AlgorithmsCmd) Run(a *app) error {
	m := hashing.NewDefaultManager()
	for _, alg := range m.Algorithms() {
		kind := "digest"
		if _, err := m.Digester(alg); errors.Is(err, hashing.ErrAlgorithmNotFound) {
			kind = "encoded"
		}
		mark := ""
		if alg == m.Default() {
			mark = " (default)"
		}
		fmt.Fprintf(a.stdout, "%-12s %s%s\n", alg, kind, mark)
	}
	return nil
}

// KeygenCmd prints a random key for --model-key.
type KeygenCmd struct{}

func (KeygenCmd) Run(a *app) error {
	key, err := encryption.GenerateKey()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.stdout, encryption.EncodeKey(key))
	return err
}
