package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tordrt/umlgen/internal/interchange"
	"github.com/tordrt/umlgen/internal/vision"
)

var (
	imagePath        string
	visionFormat     string
	visionOutputFile string
)

var visionCmd = &cobra.Command{
	Use:   "vision",
	Short: "Read a class diagram from an image",
	Long: `vision sends a picture of a class diagram to the configured multimodal model and writes
the diagram it recognized as an interchange document. The API key is read from
UMLGEN_VISION_API_KEY.`,
	Example: `  umlgen vision --image pizarra.png -o pizarra.uml.json`,
	RunE:    runVision,
}

func init() {
	f := visionCmd.Flags()
	f.StringVar(&imagePath, "image", "", "Diagram image (PNG, JPEG, GIF or WebP)")
	f.StringVarP(&visionFormat, "format", "f", interchange.FormatJSON, "Output format: json or yaml")
	f.StringVarP(&visionOutputFile, "output", "o", "", "Output file (default: stdout)")
	_ = visionCmd.MarkFlagRequired("image")
}

func runVision(cmd *cobra.Command, args []string) error {
	data, err := readInput(imagePath)
	if err != nil {
		return err
	}
	im, err := vision.New(cfg.Vision, logger)
	if err != nil {
		return err
	}
	doc, err := im.Import(cmd.Context(), vision.NewImage(data))
	if err != nil {
		return err
	}

	out, err := interchange.Encode(doc, visionFormat)
	if err != nil {
		return err
	}
	w, closeFn, err := openOutput(visionOutputFile)
	if err != nil {
		return err
	}
	defer closeFn()
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	fmt.Fprintf(os.Stderr, "recognized %d classes and %d relationships\n", len(doc.Classes), len(doc.Relationships))
	return nil
}
