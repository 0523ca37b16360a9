package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/nvr-ai/go-pad/padding"
)

const (
	// InputPath is the icon to pad.
	InputPath = "assets/icon.jpeg"
	// OutputPath is where the padded icon is written.
	OutputPath = "assets/icon_padded.jpeg"
)

func main() {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	log.SetLevel(logrus.InfoLevel)

	run(log, InputPath, OutputPath)
}

// run pads inputPath into outputPath with the default configuration. Failures
// are reported through log and never terminate the process.
func run(log logrus.FieldLogger, inputPath, outputPath string) {
	if _, err := os.Stat(inputPath); err != nil {
		log.Warnf("Input file not found: %s", inputPath)
		return
	}

	padder, err := padding.New(padding.DefaultConfig(), padding.WithLogger(log))
	if err != nil {
		log.Errorf("Error processing image: %v", err)
		return
	}

	if err := padder.PadFile(inputPath, outputPath); err != nil {
		log.Errorf("Error processing image: %v", err)
	}
}
