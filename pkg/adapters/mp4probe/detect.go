// Package mp4probe inspects MP4/MOV containers to learn the video codec,
// frame size and frame count before decoding starts.
package mp4probe

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Eyevinn/mp4ff/mp4"
)

// ErrNoVideoTrack is returned when the container has no video track.
var ErrNoVideoTrack = errors.New("mp4probe: no video track found")

// Codec represents a video codec type.
type Codec string

const (
	CodecH264    Codec = "h264"
	CodecHEVC    Codec = "hevc"
	CodecAV1     Codec = "av1"
	CodecMPEG4   Codec = "mpeg4"
	CodecUnknown Codec = "unknown"
)

// Info describes the first video track of a container.
type Info struct {
	Codec      Codec
	Width      int
	Height     int
	FrameCount int // number of video samples, -1 if it could not be counted
	Fragmented bool
}

// ProbeFile inspects the MP4 file at path.
func ProbeFile(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return ProbeReader(f)
}

// ProbeReader inspects an MP4 stream. Media data is not loaded.
func ProbeReader(reader io.ReadSeeker) (Info, error) {
	mp4File, err := mp4.DecodeFile(reader, mp4.WithDecodeMode(mp4.DecModeLazyMdat))
	if err != nil {
		return Info{}, fmt.Errorf("decode mp4: %w", err)
	}

	if _, err := reader.Seek(0, io.SeekStart); err != nil {
		return Info{}, fmt.Errorf("seek: %w", err)
	}

	return probeFile(mp4File)
}

func probeFile(mp4File *mp4.File) (Info, error) {
	moov := mp4File.Moov
	if mp4File.IsFragmented() && mp4File.Init != nil {
		moov = mp4File.Init.Moov
	}
	if moov == nil {
		return Info{}, ErrNoVideoTrack
	}

	for _, trak := range moov.Traks {
		if !isVideoTrack(trak) {
			continue
		}

		info := Info{
			Codec:      CodecUnknown,
			FrameCount: -1,
			Fragmented: mp4File.IsFragmented(),
		}
		readSampleEntry(trak, &info)

		if info.Fragmented {
			info.FrameCount = countFragmentSamples(mp4File, trak.Tkhd.TrackID)
		} else if stsz := trak.Mdia.Minf.Stbl.Stsz; stsz != nil {
			info.FrameCount = int(stsz.SampleNumber)
		}
		return info, nil
	}

	return Info{}, ErrNoVideoTrack
}

func isVideoTrack(trak *mp4.TrakBox) bool {
	if trak.Tkhd == nil || trak.Mdia == nil || trak.Mdia.Hdlr == nil {
		return false
	}
	if trak.Mdia.Hdlr.HandlerType != "vide" {
		return false
	}
	return trak.Mdia.Minf != nil && trak.Mdia.Minf.Stbl != nil
}

func readSampleEntry(trak *mp4.TrakBox, info *Info) {
	stsd := trak.Mdia.Minf.Stbl.Stsd
	if stsd == nil {
		return
	}

	for _, child := range stsd.Children {
		switch child.Type() {
		case "avc1", "avc3":
			info.Codec = CodecH264
		case "hvc1", "hev1":
			info.Codec = CodecHEVC
		case "av01":
			info.Codec = CodecAV1
		case "mp4v":
			info.Codec = CodecMPEG4
		}
		if vse, ok := child.(*mp4.VisualSampleEntryBox); ok {
			info.Width = int(vse.Width)
			info.Height = int(vse.Height)
		}
		if info.Codec != CodecUnknown {
			return
		}
	}
}

func countFragmentSamples(mp4File *mp4.File, trackID uint32) int {
	total := 0
	for _, seg := range mp4File.Segments {
		for _, frag := range seg.Fragments {
			if frag.Moof == nil {
				continue
			}
			for _, traf := range frag.Moof.Trafs {
				if traf.Tfhd == nil || traf.Tfhd.TrackID != trackID {
					continue
				}
				for _, trun := range traf.Truns {
					total += int(trun.SampleCount())
				}
			}
		}
	}
	return total
}
