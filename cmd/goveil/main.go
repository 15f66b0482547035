// GoVeil - Image steganography with key-driven placement.
//
// Usage:
//
//	goveil embed -i carrier.png -p payload.bin -o out.png -k passphrase
//	goveil extract -i out.png -o payload.bin -k passphrase
//	goveil capacity -i carrier.png -k passphrase
//	goveil inspect -i carrier.png -k passphrase -o heatmap.png
//	goveil init [-o profile.toml]
//	goveil serve [--addr :8787]
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/xob0t/GoVeil/clients/server"
	"github.com/xob0t/GoVeil/internal/logging"
	"github.com/xob0t/GoVeil/pkg/carrier"
	"github.com/xob0t/GoVeil/pkg/envelope"
	"github.com/xob0t/GoVeil/pkg/profile"
	"github.com/xob0t/GoVeil/pkg/stego"
)

const version = "0.2.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "embed":
		if err := runEmbed(os.Args[2:]); err != nil {
			fatal(err)
		}
	case "extract":
		if err := runExtract(os.Args[2:]); err != nil {
			fatal(err)
		}
	case "capacity":
		if err := runCapacity(os.Args[2:]); err != nil {
			fatal(err)
		}
	case "inspect":
		if err := runInspect(os.Args[2:]); err != nil {
			fatal(err)
		}
	case "init":
		if err := runInit(os.Args[2:]); err != nil {
			fatal(err)
		}
	case "serve":
		if err := server.RunServe(os.Args[2:]); err != nil {
			fatal(err)
		}
	case "version":
		fmt.Println("goveil " + version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

// engineFlags are the options every engine-touching command shares.
// Precedence: engine defaults < profile < explicit flags.
type engineFlags struct {
	profileName string
	threshold   int
	window      int
	verbose     bool
}

func (ef *engineFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&ef.profileName, "profile", "default", "Builtin profile name or profile TOML path")
	fs.IntVar(&ef.threshold, "threshold", stego.DefaultThreshold, "Complexity threshold override")
	fs.IntVar(&ef.window, "window", stego.DefaultWindow, "Complexity window override")
	fs.BoolVar(&ef.verbose, "verbose", false, "Enable debug logging")
	fs.BoolVar(&ef.verbose, "v", false, "Enable debug logging")
}

// resolve loads the profile and applies explicitly set flag overrides.
func (ef *engineFlags) resolve(fs *flag.FlagSet) (*profile.Profile, *stego.Engine, error) {
	logging.Setup(ef.verbose, logging.FormatText)

	prof, warnings, err := profile.Load(ef.profileName)
	if err != nil {
		return nil, nil, err
	}
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
	}

	opts := prof.Options()
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "threshold":
			opts.Threshold = ef.threshold
		case "window":
			opts.Window = ef.window
		}
	})

	eng, err := stego.New(opts)
	if err != nil {
		return nil, nil, err
	}
	return prof, eng, nil
}

func runEmbed(args []string) error {
	fs := flag.NewFlagSet("embed", flag.ExitOnError)
	var (
		input, payloadPath, output, key string
		raw                             bool
		compress                        string
		ef                              engineFlags
	)
	fs.StringVar(&input, "i", "", "Carrier image (.png or .bmp)")
	fs.StringVar(&input, "input", "", "Carrier image (.png or .bmp)")
	fs.StringVar(&payloadPath, "p", "", "Payload file")
	fs.StringVar(&payloadPath, "payload", "", "Payload file")
	fs.StringVar(&output, "o", "", "Output image (.png or .bmp)")
	fs.StringVar(&output, "output", "", "Output image (.png or .bmp)")
	fs.StringVar(&key, "k", "", "Passphrase")
	fs.StringVar(&key, "key", "", "Passphrase")
	fs.BoolVar(&raw, "raw", false, "Embed payload bytes as-is, skipping the envelope")
	fs.StringVar(&compress, "compress", "auto", "Envelope compression: auto, none, lz4, zstd")
	ef.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if input == "" || payloadPath == "" || output == "" {
		printUsage()
		return fmt.Errorf("embed requires -i, -p and -o")
	}

	prof, eng, err := ef.resolve(fs)
	if err != nil {
		return err
	}

	grid, err := carrier.Load(input)
	if err != nil {
		return err
	}
	payload, err := os.ReadFile(payloadPath)
	if err != nil {
		return fmt.Errorf("read payload: %w", err)
	}

	if raw || prof.Envelope.Raw {
		raw = true
	}
	if !raw {
		compressSet := false
		fs.Visit(func(f *flag.Flag) {
			if f.Name == "compress" {
				compressSet = true
			}
		})
		if !compressSet && prof.Envelope.Compression != "" {
			compress = prof.Envelope.Compression
		}
		comp, err := envelope.ParseCompression(compress)
		if err != nil {
			return err
		}
		sealed, err := envelope.Seal(payload, key, comp)
		if err != nil {
			return err
		}
		slog.Debug("payload sealed", "rawBytes", len(payload), "sealedBytes", len(sealed))
		payload = sealed
	}

	rep, err := eng.Survey(grid, key)
	if err != nil {
		return err
	}
	if err := eng.Embed(grid, payload, key); err != nil {
		if errors.Is(err, stego.ErrCapacityExceeded) {
			return fmt.Errorf("%w: payload needs %d bits, carrier accepts %d (try a larger carrier or a lower -threshold)",
				stego.ErrCapacityExceeded, eng.Options().HeaderBits+len(payload)*8, rep.CapacityBits)
		}
		return err
	}

	if err := carrier.Save(output, grid); err != nil {
		return err
	}
	slog.Info("payload embedded",
		"output", output,
		"payloadBytes", len(payload),
		"bitsUsed", eng.Options().HeaderBits+len(payload)*8,
		"capacityBits", rep.CapacityBits)
	return nil
}

func runExtract(args []string) error {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	var (
		input, output, key string
		raw                bool
		ef                 engineFlags
	)
	fs.StringVar(&input, "i", "", "Carrier image with embedded payload")
	fs.StringVar(&input, "input", "", "Carrier image with embedded payload")
	fs.StringVar(&output, "o", "", "Output payload file")
	fs.StringVar(&output, "output", "", "Output payload file")
	fs.StringVar(&key, "k", "", "Passphrase")
	fs.StringVar(&key, "key", "", "Passphrase")
	fs.BoolVar(&raw, "raw", false, "Treat the embedded bytes as-is, skipping the envelope")
	ef.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if input == "" || output == "" {
		printUsage()
		return fmt.Errorf("extract requires -i and -o")
	}

	prof, eng, err := ef.resolve(fs)
	if err != nil {
		return err
	}

	grid, err := carrier.Load(input)
	if err != nil {
		return err
	}

	payload, err := eng.Extract(grid, key)
	if err != nil {
		if errors.Is(err, stego.ErrTruncatedPayload) {
			return fmt.Errorf("%w (wrong passphrase, wrong image, or a lossily recompressed carrier)", err)
		}
		return err
	}

	if raw || prof.Envelope.Raw {
		raw = true
	}
	if raw {
		if envelope.IsSealed(payload) {
			fmt.Fprintln(os.Stderr, "Warning: extracted payload looks like a sealed envelope; did you mean to drop --raw?")
		}
	} else {
		opened, err := envelope.Open(payload, key)
		if err != nil {
			if errors.Is(err, envelope.ErrChecksum) || errors.Is(err, envelope.ErrNotEnvelope) {
				return fmt.Errorf("%w: wrong passphrase or damaged carrier", err)
			}
			return err
		}
		payload = opened
	}

	if err := os.WriteFile(output, payload, 0644); err != nil {
		return fmt.Errorf("write payload: %w", err)
	}
	slog.Info("payload extracted", "output", output, "payloadBytes", len(payload))
	return nil
}

func runCapacity(args []string) error {
	fs := flag.NewFlagSet("capacity", flag.ExitOnError)
	var (
		input, key string
		ef         engineFlags
	)
	fs.StringVar(&input, "i", "", "Carrier image")
	fs.StringVar(&input, "input", "", "Carrier image")
	fs.StringVar(&key, "k", "", "Passphrase")
	fs.StringVar(&key, "key", "", "Passphrase")
	ef.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if input == "" {
		printUsage()
		return fmt.Errorf("capacity requires -i")
	}

	_, eng, err := ef.resolve(fs)
	if err != nil {
		return err
	}
	grid, err := carrier.Load(input)
	if err != nil {
		return err
	}
	rep, err := eng.Survey(grid, key)
	if err != nil {
		return err
	}

	fmt.Printf("Carrier:  %s (%dx%d, %d channels)\n", input, grid.Width, grid.Height, grid.Channels)
	fmt.Printf("Slots:    %d total, %d accepted\n", rep.TotalSlots, rep.AcceptedSlots)
	fmt.Printf("Capacity: %d payload bytes (net of %d-bit header)\n", rep.CapacityBytes, eng.Options().HeaderBits)
	return nil
}

func runInspect(args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	var (
		input, output, key string
		ef                 engineFlags
	)
	fs.StringVar(&input, "i", "", "Carrier image")
	fs.StringVar(&input, "input", "", "Carrier image")
	fs.StringVar(&output, "o", "heatmap.png", "Heatmap output (.png or .bmp)")
	fs.StringVar(&output, "output", "heatmap.png", "Heatmap output (.png or .bmp)")
	fs.StringVar(&key, "k", "", "Passphrase")
	fs.StringVar(&key, "key", "", "Passphrase")
	ef.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if input == "" {
		printUsage()
		return fmt.Errorf("inspect requires -i")
	}

	_, eng, err := ef.resolve(fs)
	if err != nil {
		return err
	}
	grid, err := carrier.Load(input)
	if err != nil {
		return err
	}
	rep, err := eng.Survey(grid, key)
	if err != nil {
		return err
	}

	if err := carrier.Save(output, carrier.Heatmap(rep, eng.Options().Threshold)); err != nil {
		return err
	}
	slog.Info("heatmap written", "output", output, "acceptedSlots", rep.AcceptedSlots, "totalSlots", rep.TotalSlots)
	return nil
}

func runInit(args []string) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	var output string
	fs.StringVar(&output, "o", "profile.toml", "Output path for the example profile")
	fs.StringVar(&output, "output", "profile.toml", "Output path for the example profile")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := os.WriteFile(output, []byte(profile.ExampleTOML()), 0644); err != nil {
		return fmt.Errorf("write profile: %w", err)
	}
	fmt.Printf("Created: %s\n", output)
	fmt.Println("Run: goveil embed -i carrier.png -p payload.bin -o out.png -k passphrase -profile " + output)
	return nil
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func printUsage() {
	fmt.Print(`GoVeil - Image Steganography (Pure Go)

USAGE:
    goveil embed -i <carrier> -p <payload> -o <output> -k <passphrase> [options]
    goveil extract -i <carrier> -o <payload> -k <passphrase> [options]
    goveil capacity -i <carrier> -k <passphrase> [options]
    goveil inspect -i <carrier> -k <passphrase> [-o heatmap.png] [options]
    goveil init [-o profile.toml]
    goveil serve [--addr :8787] [--open]
    goveil version

EMBED:
    -i, --input <path>     Carrier image (.png or .bmp, lossless only)
    -p, --payload <path>   Payload file to hide
    -o, --output <path>    Output image (.png or .bmp)
    -k, --key <phrase>     Shared passphrase
    --raw                  Skip the compression/checksum envelope
    --compress <algo>      Envelope compression: auto, none, lz4, zstd

EXTRACT:
    -i, --input <path>     Image with an embedded payload
    -o, --output <path>    Where to write the recovered payload
    -k, --key <phrase>     Shared passphrase
    --raw                  Treat embedded bytes as-is (must match embed)

SHARED OPTIONS:
    -profile <name|path>   Builtin profile (default, dense, cautious) or TOML file
    -threshold <n>         Complexity threshold override
    -window <n>            Complexity window override (odd, >= 3)
    -v, -verbose           Debug logging with per-operation stats

EXAMPLES:
    goveil init
    goveil capacity -i photo.png -k "correct horse"
    goveil embed -i photo.png -p secret.txt -o out.png -k "correct horse"
    goveil extract -i out.png -o secret.txt -k "correct horse"
    goveil inspect -i photo.png -k "correct horse" -o heatmap.png -threshold 40
`)
}
