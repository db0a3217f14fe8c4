package main

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/dgallion1/docsplit/internal/pipeline"
	"github.com/dgallion1/docsplit/internal/splitter"
)

// Flag variables.
var (
	flagOut          string
	flagProfile      string
	flagWorkers      int
	flagSkipExisting bool
	flagVerbose      bool
)

var processCmd = &cobra.Command{
	Use:   "process <path>",
	Short: "Insert split markers into a document or a directory of documents",
	Long: `Process takes a .docx file or a directory tree and writes marked copies
under the output directory, mirroring the input structure.

Examples:
  docsplit process report.docx
  docsplit process ./docs --out ./marked --workers 8
  docsplit process ./docs --profile split.yaml --skip-existing`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVar(&flagOut, "out", "split_output", "Output directory")
	processCmd.Flags().StringVar(&flagProfile, "profile", "", "YAML parameter profile (default: built-in defaults)")
	processCmd.Flags().IntVar(&flagWorkers, "workers", 4, "Number of documents processed in parallel")
	processCmd.Flags().BoolVar(&flagSkipExisting, "skip-existing", false, "Skip inputs whose output file already exists")
	processCmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Log at debug level")
}

func runProcess(cmd *cobra.Command, args []string) error {
	root := args[0]

	level := slog.LevelInfo
	if flagVerbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	params := splitter.DefaultParams()
	if flagProfile != "" {
		var err error
		params, err = splitter.LoadProfile(flagProfile)
		if err != nil {
			return err
		}
	}
	if flagWorkers <= 0 {
		flagWorkers = 1
	}

	info, err := os.Stat(root)
	if err != nil {
		return err
	}

	var inputs []string
	if info.IsDir() {
		inputs, err = collectInputs(root, flagOut)
		if err != nil {
			return err
		}
	} else {
		inputs = []string{root}
		root = filepath.Dir(root)
	}

	if len(inputs) == 0 {
		fmt.Fprintln(os.Stdout, "no .docx files found")
		return nil
	}
	fmt.Fprintf(os.Stdout, "Found %d documents to process\n", len(inputs))

	converter := pipeline.NewConverter(log)

	// Fixed-size worker pool over the input list.
	type job struct{ in string }
	jobs := make(chan job)
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		failed   int
		skipped  int
		finished int
	)

	for i := 0; i < flagWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				out, err := outputPath(root, flagOut, j.in)
				if err != nil {
					log.Error("output path", "input", j.in, "error", err)
					mu.Lock()
					failed++
					mu.Unlock()
					continue
				}
				if flagSkipExisting {
					if _, err := os.Stat(out); err == nil {
						log.Debug("output exists, skipping", "output", out)
						mu.Lock()
						skipped++
						mu.Unlock()
						continue
					}
				}
				res, err := processFile(converter, params, j.in, out)
				if err != nil {
					log.Error("split failed", "input", j.in, "error", err)
					mu.Lock()
					failed++
					mu.Unlock()
					continue
				}
				fmt.Fprintf(os.Stdout, "✓ Written: %s (%d elements, %d markers, %d images)\n",
					out, res.Elements, res.Markers, res.Images)
				mu.Lock()
				finished++
				mu.Unlock()
			}
		}()
	}

	for _, in := range inputs {
		jobs <- job{in: in}
	}
	close(jobs)
	wg.Wait()

	fmt.Fprintf(os.Stdout, "Done: %d processed, %d skipped, %d failed\n", finished, skipped, failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, len(inputs))
	}
	return nil
}

// collectInputs walks the tree and returns every .docx input, skipping
// editor lock files and anything already under the output directory.
func collectInputs(root, outDir string) ([]string, error) {
	absOut, err := filepath.Abs(outDir)
	if err != nil {
		return nil, err
	}

	var inputs []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			abs, err := filepath.Abs(path)
			if err != nil {
				return err
			}
			if abs == absOut {
				return filepath.SkipDir
			}
			return nil
		}
		name := d.Name()
		if strings.HasPrefix(name, "~$") {
			return nil
		}
		if !strings.EqualFold(filepath.Ext(name), ".docx") {
			return nil
		}
		inputs = append(inputs, path)
		return nil
	})
	return inputs, err
}

// outputPath mirrors the input's position under root into the output
// directory.
func outputPath(root, outDir, in string) (string, error) {
	rel, err := filepath.Rel(root, in)
	if err != nil {
		return "", err
	}
	out := filepath.Join(outDir, rel)
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return "", err
	}
	return out, nil
}

func processFile(converter *pipeline.Converter, params splitter.Params, in, out string) (*pipeline.Result, error) {
	data, err := os.ReadFile(in)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	res, err := converter.Convert(data, params)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(out, res.Data, 0o644); err != nil {
		return nil, fmt.Errorf("write: %w", err)
	}
	return res, nil
}
