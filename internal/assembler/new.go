package assembler

import (
	"github.com/nguyentantai21042004/paper-flow/internal/config"
	"github.com/nguyentantai21042004/paper-flow/internal/logger"
	"github.com/nguyentantai21042004/paper-flow/pkg/executor"
)

type implAssembler struct {
	video    config.VideoConfig
	ffmpeg   config.FFmpegConfig
	tempRoot string
	executor executor.Executor
	logger   logger.Logger
}

// New creates an Assembler. Intermediate files go to a private directory
// under tempRoot, or the system temp directory when tempRoot is empty.
func New(video config.VideoConfig, ffmpeg config.FFmpegConfig, tempRoot string, exec executor.Executor, log logger.Logger) Assembler {
	if video.FPS <= 0 {
		video.FPS = 24
	}
	if video.SlideSeconds <= 0 {
		video.SlideSeconds = 4
	}
	if ffmpeg.Binary == "" {
		ffmpeg.Binary = "ffmpeg"
	}
	if ffmpeg.Encoder == "" {
		ffmpeg.Encoder = "libx264"
	}
	if ffmpeg.AudioCodec == "" {
		ffmpeg.AudioCodec = "aac"
	}
	if ffmpeg.Preset == "" {
		ffmpeg.Preset = "medium"
	}
	if ffmpeg.PixelFormat == "" {
		ffmpeg.PixelFormat = "yuv420p"
	}
	return &implAssembler{
		video:    video,
		ffmpeg:   ffmpeg,
		tempRoot: tempRoot,
		executor: exec,
		logger:   log,
	}
}
