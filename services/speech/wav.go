package speech

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ErrUnsupportedAudio is returned for anything other than 16-bit PCM WAV.
var ErrUnsupportedAudio = errors.New("unsupported audio: expected 16-bit PCM WAV")

type riffHeader struct {
	RiffTag  [4]byte
	FileSize uint32
	WaveTag  [4]byte
}

type chunkHeader struct {
	ID   [4]byte
	Size uint32
}

type fmtChunk struct {
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
}

// WAVInfo describes the PCM stream inside a WAV file.
type WAVInfo struct {
	NumChannels   int
	SampleRate    int
	BitsPerSample int
	DataSize      int
}

// ParseWAVHeader walks the RIFF chunks up to "data", skipping anything
// (LIST, fact) that sits between "fmt " and the samples.
func ParseWAVHeader(data []byte) (*WAVInfo, error) {
	buf := bytes.NewReader(data)

	var riff riffHeader
	if err := binary.Read(buf, binary.LittleEndian, &riff); err != nil {
		return nil, fmt.Errorf("%w: short header", ErrUnsupportedAudio)
	}
	if string(riff.RiffTag[:]) != "RIFF" || string(riff.WaveTag[:]) != "WAVE" {
		return nil, fmt.Errorf("%w: not a RIFF/WAVE file", ErrUnsupportedAudio)
	}

	var info *WAVInfo
	for {
		var chunk chunkHeader
		if err := binary.Read(buf, binary.LittleEndian, &chunk); err != nil {
			return nil, fmt.Errorf("%w: missing data chunk", ErrUnsupportedAudio)
		}
		switch string(chunk.ID[:]) {
		case "fmt ":
			var f fmtChunk
			if chunk.Size < 16 {
				return nil, fmt.Errorf("%w: fmt chunk too small", ErrUnsupportedAudio)
			}
			if err := binary.Read(buf, binary.LittleEndian, &f); err != nil {
				return nil, fmt.Errorf("%w: truncated fmt chunk", ErrUnsupportedAudio)
			}
			if f.AudioFormat != 1 || f.BitsPerSample != 16 {
				return nil, fmt.Errorf("%w: format %d with %d bits", ErrUnsupportedAudio, f.AudioFormat, f.BitsPerSample)
			}
			info = &WAVInfo{
				NumChannels:   int(f.NumChannels),
				SampleRate:    int(f.SampleRate),
				BitsPerSample: int(f.BitsPerSample),
			}
			if err := skip(buf, int64(chunk.Size)-16); err != nil {
				return nil, err
			}
		case "data":
			if info == nil {
				return nil, fmt.Errorf("%w: data before fmt", ErrUnsupportedAudio)
			}
			info.DataSize = int(chunk.Size)
			return info, nil
		default:
			if err := skip(buf, int64(chunk.Size)); err != nil {
				return nil, err
			}
		}
	}
}

func skip(r *bytes.Reader, n int64) error {
	if n <= 0 {
		return nil
	}
	if _, err := r.Seek(n, io.SeekCurrent); err != nil {
		return fmt.Errorf("%w: %v", ErrUnsupportedAudio, err)
	}
	return nil
}
