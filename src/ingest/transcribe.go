package ingest

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Transcriber shells out to yt-dlp and whisper. Both binaries must be on
// PATH; audio lands in a temp dir that is removed afterwards.
type Transcriber struct {
	YtDlpPath   string // default "yt-dlp"
	WhisperPath string // default "whisper"
	Model       string // default "tiny"
}

func NewTranscriber(model string) *Transcriber {
	if model == "" {
		model = "tiny"
	}
	return &Transcriber{YtDlpPath: "yt-dlp", WhisperPath: "whisper", Model: model}
}

// Transcribe downloads the best audio stream and runs whisper with
// translate-to-English, returning the transcript text.
func (t *Transcriber) Transcribe(ctx context.Context, youtubeURL string) (string, error) {
	if _, err := exec.LookPath(t.YtDlpPath); err != nil {
		return "", fmt.Errorf("yt-dlp is not installed: %w", err)
	}
	if _, err := exec.LookPath(t.WhisperPath); err != nil {
		return "", fmt.Errorf("whisper is not installed: %w", err)
	}

	tmpDir, err := os.MkdirTemp("", "yt-transcribe-")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(tmpDir)

	audioPath := filepath.Join(tmpDir, "audio.%(ext)s")
	dl := exec.CommandContext(ctx, t.YtDlpPath,
		"--format", "bestaudio/best",
		"--no-playlist",
		"--quiet", "--no-warnings",
		"--output", audioPath,
		youtubeURL,
	)
	if out, err := dl.CombinedOutput(); err != nil {
		return "", fmt.Errorf("yt-dlp failed: %v: %s", err, strings.TrimSpace(string(out)))
	}

	matches, err := filepath.Glob(filepath.Join(tmpDir, "audio.*"))
	if err != nil || len(matches) == 0 {
		return "", fmt.Errorf("audio file not found after download")
	}
	audioFile := matches[0]

	log.Printf("Transcribing %s with whisper model %s", filepath.Base(audioFile), t.Model)
	tr := exec.CommandContext(ctx, t.WhisperPath,
		audioFile,
		"--model", t.Model,
		"--task", "translate",
		"--output_format", "txt",
		"--output_dir", tmpDir,
	)
	if out, err := tr.CombinedOutput(); err != nil {
		return "", fmt.Errorf("whisper failed: %v: %s", err, strings.TrimSpace(string(out)))
	}

	txtPath := strings.TrimSuffix(audioFile, filepath.Ext(audioFile)) + ".txt"
	data, err := os.ReadFile(txtPath)
	if err != nil {
		return "", fmt.Errorf("transcript file not found: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}
