package util

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// remoteProbeTimeout is passed to ffprobe in microseconds.
const remoteProbeTimeout = "15000000"

// VideoInfo describes a lesson video. Duration is in seconds.
type VideoInfo struct {
	Duration float64 `json:"duration"`
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	Format   string  `json:"format"`
}

type probeReport struct {
	Streams []struct {
		CodecType string `json:"codec_type"`
		Width     int    `json:"width"`
		Height    int    `json:"height"`
	} `json:"streams"`
	Format struct {
		Duration   string `json:"duration"`
		FormatName string `json:"format_name"`
	} `json:"format"`
}

var probe = ffmpeg.Probe

// GetVideoInfo runs ffprobe against a local file or an http(s) URL.
func GetVideoInfo(source string) (*VideoInfo, error) {
	var args []ffmpeg.KwArgs
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		args = append(args, ffmpeg.KwArgs{"rw_timeout": remoteProbeTimeout})
	}

	out, err := probe(source, args...)
	if err != nil {
		return nil, fmt.Errorf("probe video %q: %w", source, err)
	}

	var report probeReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		return nil, fmt.Errorf("parse probe output: %w", err)
	}
	return report.videoInfo(), nil
}

func (r *probeReport) videoInfo() *VideoInfo {
	info := &VideoInfo{Format: "unknown"}
	for _, stream := range r.Streams {
		if stream.CodecType == "video" {
			info.Width, info.Height = stream.Width, stream.Height
			break
		}
	}
	// ffprobe reports "N/A" for live or unseekable inputs.
	if seconds, err := strconv.ParseFloat(r.Format.Duration, 64); err == nil {
		info.Duration = seconds
	}
	if name, _, _ := strings.Cut(r.Format.FormatName, ","); name != "" {
		info.Format = name
	}
	return info
}
