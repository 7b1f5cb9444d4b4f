package pmx

import "go.followtheprocess.codes/hue"

const (
	// failure is the style used for marking a file that could not be processed.
	failure = hue.Red | hue.Bold

	// dimmed is the style used for printing informational content like
	// the reason a file failed.
	dimmed = hue.BrightBlack | hue.Italic
)
