package polyglot

import (
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"
)

// Progress receives one tick per translated key.
type Progress interface {
	Add(n int) error
	Finish() error
}

// ProgressFactory creates a Progress for a destination locale.
type ProgressFactory func(total int, desc string) Progress

// SilentProgress discards progress.
func SilentProgress(total int, _ string) Progress {
	return progressbar.DefaultSilent(int64(total))
}

// BarProgress returns a factory drawing a coloured bar on w.
func BarProgress(w io.Writer) ProgressFactory {
	return func(total int, desc string) Progress {
		return progressbar.NewOptions(total,
			progressbar.OptionSetWriter(w),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionSetDescription(fmt.Sprintf("[cyan]%s[reset]", desc)),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}))
	}
}
