// Package export renders the timeline as a CMX 3600 EDL cut list. Source
// in/out come from each clip's in/out points; record in/out come from the
// clip's timeline position.
package export

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/cutline/cutline/internal/timeline"
)

// GenerateEDL emits an EDL for the clips of one track, ordered by start
// time. Overlapping clips are emitted as-is; resolving overlaps is the
// editor's job, not the exporter's.
func GenerateEDL(clips []timeline.Clip, title string, frameRate float64) string {
	fps := int(math.Round(frameRate))
	if fps <= 0 {
		fps = 30
	}

	isDropFrame := math.Abs(frameRate-29.97) < 0.01 || math.Abs(frameRate-59.94) < 0.01

	ordered := make([]timeline.Clip, len(clips))
	copy(ordered, clips)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].StartTime < ordered[j].StartTime
	})

	lines := []string{fmt.Sprintf("TITLE: %s", title)}
	if isDropFrame {
		lines = append(lines, "FCM: DROP FRAME")
	} else {
		lines = append(lines, "FCM: NON-DROP FRAME")
	}
	lines = append(lines, "")

	for i, clip := range ordered {
		srcIn := msToTimecode(clip.InPoint, fps)
		srcOut := msToTimecode(clip.OutPoint, fps)
		recIn := msToTimecode(clip.StartTime, fps)
		recOut := msToTimecode(clip.EndTime(), fps)

		lines = append(lines,
			fmt.Sprintf("%03d  %-8s %-5s C        %s %s %s %s", i+1, "AX", "V", srcIn, srcOut, recIn, recOut),
			fmt.Sprintf("* FROM CLIP NAME:  %s", clip.Name),
			fmt.Sprintf("* MEDIA PATH:  %s", clip.FilePath),
		)
	}

	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

func msToTimecode(ms int64, fps int) string {
	totalFrames := int64(math.Round(float64(ms) * float64(fps) / 1000.0))
	frames := totalFrames % int64(fps)
	totalSeconds := totalFrames / int64(fps)
	seconds := totalSeconds % 60
	totalMinutes := totalSeconds / 60
	minutes := totalMinutes % 60
	hours := totalMinutes / 60
	return fmt.Sprintf("%02d:%02d:%02d:%02d", hours, minutes, seconds, frames)
}
