package utils

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strconv"
	"strings"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"
)

// TranscriptionModel is sent as the model field of every request.
const TranscriptionModel = openai.Whisper1

// AudioPayload is the audio uploaded with a single request.
type AudioPayload struct {
	Data      []byte
	Extension string // without the leading dot
}

// MIMETypeForExtension maps an audio file extension to its upload content type.
func MIMETypeForExtension(ext string) string {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "m4a":
		return "audio/m4a"
	case "mp3":
		return "audio/mpeg"
	case "wav":
		return "audio/wav"
	case "mp4":
		return "audio/mp4"
	default:
		return "application/octet-stream"
	}
}

func newBoundary() string {
	return "Boundary-" + uuid.NewString()
}

// BuildMultipartBody encodes payload and opts as a multipart/form-data body
// delimited by boundary. Fields are written in a fixed order: model,
// language, temperature, response_format, timestamp, file.
func BuildMultipartBody(payload AudioPayload, opts TranscriptionOptions, boundary string) ([]byte, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.SetBoundary(boundary); err != nil {
		return nil, fmt.Errorf("invalid boundary: %w", err)
	}

	fields := [][2]string{{"model", TranscriptionModel}}
	if opts.Language != "" {
		fields = append(fields, [2]string{"language", opts.Language})
	}
	if opts.Temperature != 0 {
		fields = append(fields, [2]string{"temperature", strconv.FormatFloat(float64(opts.Temperature), 'f', -1, 32)})
	}
	fields = append(fields, [2]string{"response_format", string(opts.ResponseFormat)})
	if opts.TimestampGranularity {
		fields = append(fields, [2]string{"timestamp", "true"})
	}

	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, fmt.Errorf("failed to write field %s: %w", f[0], err)
		}
	}

	ext := strings.ToLower(strings.TrimPrefix(payload.Extension, "."))
	filename := "audio"
	if ext != "" {
		filename += "." + ext
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	header.Set("Content-Type", MIMETypeForExtension(ext))
	part, err := w.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := part.Write(payload.Data); err != nil {
		return nil, fmt.Errorf("failed to write audio data: %w", err)
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart body: %w", err)
	}
	return buf.Bytes(), nil
}
