package transcode

import "fmt"

// Resolution is an output tier name like "720p" or "4K".
type Resolution string

// DefaultResolution is used when a request names no tier or an
// unrecognized one.
const DefaultResolution Resolution = "1080p"

var resolutionHeights = map[Resolution]int{
	"480p":  480,
	"720p":  720,
	"1080p": 1080,
	"1440p": 1440,
	"4K":    2160,
}

// Height returns the pixel height for the tier, falling back to 1080.
func (r Resolution) Height() int {
	if height, ok := resolutionHeights[r]; ok {
		return height
	}
	return resolutionHeights[DefaultResolution]
}

// Scale is an ffmpeg scale filter with one fixed axis; the -1 axis
// preserves aspect ratio.
type Scale struct {
	Width  int
	Height int
}

func (s Scale) String() string {
	return fmt.Sprintf("scale=%d:%d", s.Width, s.Height)
}

// ScaleFor chooses the scale expression from the source orientation.
// Landscape sources pin the target height to the first axis so width
// follows; portrait sources pin it to the second axis instead, keeping
// the short edge at the tier height either way.
func ScaleFor(sourceWidth, sourceHeight int, resolution Resolution) Scale {
	target := resolution.Height()
	if sourceHeight > sourceWidth {
		return Scale{Width: -1, Height: target}
	}
	return Scale{Width: target, Height: -1}
}

// speechFilter keeps the voice band and drops rumble and hiss.
const speechFilter = "highpass=f=200,lowpass=f=3000"

// Plan is a fully resolved encode: the exact ffmpeg argument list for
// one job against one probed source.
type Plan struct {
	Job    Job
	Scale  Scale
	Codec  string
	CRF    int
	Preset string
	Audio  string
}

// Args builds the ffmpeg argument list, output path last.
func (p Plan) Args(outputPath string) []string {
	args := []string{"-i", p.Job.SourcePath, "-vf", p.Scale.String()}
	if p.Job.Trimmed() {
		args = append(args, "-ss", p.Job.StartTime, "-to", p.Job.EndTime)
	}
	args = append(args,
		"-c:v", p.Codec,
		"-crf", fmt.Sprintf("%d", p.CRF),
		"-preset", p.Preset,
		"-c:a", p.Audio,
	)
	if p.Job.EnhanceAudio {
		args = append(args, "-af", speechFilter)
	}
	args = append(args, outputPath)
	return args
}
