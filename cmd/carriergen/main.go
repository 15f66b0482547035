// carriergen - Lossless carrier image generator
//
// Usage:
//
//	carriergen generate --pattern noise|gradient|solid -o <file> [options]
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/xob0t/GoVeil/pkg/carrier"
	"github.com/xob0t/GoVeil/pkg/stego"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "generate", "gen":
		if err := runGenerate(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runGenerate(args []string) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)

	var (
		pattern string
		output  string
		width   int
		height  int
		color   string
		seed    int64
	)

	fs.StringVar(&pattern, "pattern", "noise", "Pattern: noise, gradient, solid")
	fs.StringVar(&output, "o", "", "Output file path (.png or .bmp)")
	fs.StringVar(&output, "output", "", "Output file path (.png or .bmp)")
	fs.IntVar(&width, "width", 1280, "Width in pixels")
	fs.IntVar(&width, "w", 1280, "Width in pixels")
	fs.IntVar(&height, "height", 720, "Height in pixels")
	fs.IntVar(&height, "h", 720, "Height in pixels")
	fs.StringVar(&color, "color", "random", "Solid fill color (hex or 'random')")
	fs.Int64Var(&seed, "seed", 1, "Noise seed (same seed, same carrier)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if output == "" {
		return fmt.Errorf("output file is required (-o)")
	}
	if width < 3 || height < 3 {
		return fmt.Errorf("carrier must be at least 3x3, got %dx%d", width, height)
	}

	var grid *stego.PixelGrid
	switch strings.ToLower(pattern) {
	case "noise":
		grid = carrier.Noise(width, height, seed)
	case "gradient":
		grid = carrier.Gradient(width, height)
	case "solid":
		r, g, b, err := carrier.ParseColor(color)
		if err != nil {
			return err
		}
		grid = carrier.Solid(width, height, r, g, b)
	default:
		return fmt.Errorf("invalid pattern: %s (use: noise, gradient, solid)", pattern)
	}

	fmt.Printf("Generating %s carrier: %s\n", pattern, output)
	if err := carrier.Save(output, grid); err != nil {
		return err
	}

	fmt.Printf("Successfully created: %s\n", output)
	return nil
}

func printUsage() {
	fmt.Println(`carriergen - Lossless Carrier Generation (Pure Go)

USAGE:
    carriergen generate [options]

GENERATE OPTIONS:
    --pattern <name>     Pattern: noise, gradient, solid (default: noise)
    -o, --output <path>  Output file path (.png or .bmp)
    -w, --width <px>     Width in pixels (default: 1280)
    -h, --height <px>    Height in pixels (default: 720)
    --color <color>      Solid fill: hex or 'random' (default: random)
    --seed <n>           Noise seed (default: 1)

Noise carriers accept nearly every slot under the default complexity
threshold; gradients accept few and solids none. Use "goveil capacity"
to check a generated carrier before embedding.

EXAMPLES:
    carriergen generate -o cover.png
    carriergen generate --pattern gradient -w 800 -h 600 -o ramp.png
    carriergen generate --pattern solid --color "#1a1a2e" -o flat.bmp`)
}
