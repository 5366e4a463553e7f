package render

import (
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
)

// SavePNG writes img as baseName.png inside directory (the working
// directory when empty) and returns the path written.
func SavePNG(img image.Image, baseName, directory string) (string, error) {
	outputDir := directory
	if outputDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get current directory: %w", err)
		}
		outputDir = cwd
	}

	filePath := filepath.Join(outputDir, baseName+".png")
	file, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create file %s: %w", filePath, err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("failed to encode PNG: %w", err)
	}

	bounds := img.Bounds()
	slog.Info("Snapshot saved", "path", filePath, "size", fmt.Sprintf("%dx%d", bounds.Dx(), bounds.Dy()), "format", "PNG")
	return filePath, nil
}
