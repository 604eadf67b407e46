package coder

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"crypticoder-go/pkg/config"
	"crypticoder-go/pkg/log"
	"crypticoder-go/pkg/obfuscator"
	"crypticoder-go/pkg/transform"

	"github.com/klauspost/compress/zstd"
)

// ProgressFunc receives 33, 66 and 100 as a file operation advances, then 0.
type ProgressFunc func(percent int)

// Service is what the CLI and the HTTP API call: it validates input, runs the
// obfuscator and handles text armor and files.
type Service struct {
	cfg      *config.Config
	Progress ProgressFunc
}

func NewService(cfg *config.Config) (*Service, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Service{cfg: cfg}, nil
}

func (s *Service) Config() *config.Config { return s.cfg }

func (s *Service) progress(p int) {
	if s.Progress != nil {
		s.Progress(p)
	}
}

// textPipeline is obfuscator then base64, so the output can be pasted as text.
func textPipeline(key string) (*transform.Pipeline, error) {
	codec, err := obfuscator.New(key)
	if err != nil {
		return nil, err
	}
	return transform.NewPipeline(codec, transform.NewBase64Armor())
}

// filePipeline optionally compresses before obfuscating.
func (s *Service) filePipeline(key string) (*transform.Pipeline, error) {
	codec, err := obfuscator.New(key)
	if err != nil {
		return nil, err
	}
	switch s.cfg.Compression {
	case config.CompressionGzip:
		return transform.NewPipeline(transform.NewGzipTransform(), codec)
	case config.CompressionZstd:
		zt, err := transform.NewZstdTransform(zstd.SpeedDefault)
		if err != nil {
			return nil, err
		}
		return transform.NewPipeline(zt, codec)
	default:
		return transform.NewPipeline(codec)
	}
}

// EncodeText obfuscates the UTF-8 bytes of text and returns them base64 encoded.
func (s *Service) EncodeText(key, text string) (string, error) {
	start := time.Now()
	if key == "" {
		return "", s.fail(opErr(OpEncoding, ErrKeyRequired), "text", "")
	}
	p, err := textPipeline(key)
	if err != nil {
		return "", s.fail(opErr(OpEncoding, err), "text", "")
	}
	out, err := p.Encode([]byte(text))
	if err != nil {
		return "", s.fail(opErr(OpEncoding, err), "text", "")
	}
	s.done(OpEncoding, "text", "", len(text), len(out), start)
	return string(out), nil
}

// DecodeText reverses EncodeText. The result must be valid UTF-8.
func (s *Service) DecodeText(key, armored string) (string, error) {
	start := time.Now()
	if key == "" {
		return "", s.fail(opErr(OpDecoding, ErrKeyRequired), "text", "")
	}
	p, err := textPipeline(key)
	if err != nil {
		return "", s.fail(opErr(OpDecoding, err), "text", "")
	}
	out, err := p.Decode([]byte(armored))
	if err != nil {
		return "", s.fail(opErr(OpDecoding, err), "text", "")
	}
	if !utf8.Valid(out) {
		return "", s.fail(opErr(OpDecoding, ErrNotText), "text", "")
	}
	s.done(OpDecoding, "text", "", len(armored), len(out), start)
	return string(out), nil
}

// EncodeFile writes the obfuscated content of path next to it, replacing
// the extension with the encoded suffix, and returns the new path.
func (s *Service) EncodeFile(key, path string) (string, error) {
	return s.processFile(OpEncoding, key, path)
}

// DecodeFile is the inverse of EncodeFile and writes with the decoded suffix.
func (s *Service) DecodeFile(key, path string) (string, error) {
	return s.processFile(OpDecoding, key, path)
}

func (s *Service) processFile(op, key, path string) (string, error) {
	start := time.Now()
	defer s.progress(0)

	if key == "" {
		return "", s.fail(opErr(op, ErrKeyRequired), "file", path)
	}
	if path == "" {
		return "", s.fail(opErr(op, ErrNoFile), "file", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", s.fail(opErr(OpFileRead, err), "file", path)
	}
	s.progress(33)

	p, err := s.filePipeline(key)
	if err != nil {
		return "", s.fail(opErr(op, err), "file", path)
	}
	var out []byte
	suffix := s.cfg.EncodedSuffix
	if op == OpEncoding {
		out, err = p.Encode(data)
	} else {
		out, err = p.Decode(data)
		suffix = s.cfg.DecodedSuffix
	}
	if err != nil {
		return "", s.fail(opErr(op, err), "file", path)
	}
	s.progress(66)

	outPath := stripExt(path) + suffix
	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		return "", s.fail(opErr(OpFileWrite, err), "file", path)
	}
	s.progress(100)

	s.done(op, "file", outPath, len(data), len(out), start)
	return outPath, nil
}

// stripExt drops the last extension of path. Leading dots of the base name
// do not start an extension, so ".profile" is kept whole.
func stripExt(path string) string {
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(filepath.Base(path), ext)
	if strings.Trim(stem, ".") == "" {
		return path
	}
	return strings.TrimSuffix(path, ext)
}

func (s *Service) done(op, mode, output string, in, out int, start time.Time) {
	ev := log.Info().
		Str("action", op).
		Str("mode", mode).
		Int("in_bytes", in).
		Int("out_bytes", out).
		Dur("elapsed", time.Since(start))
	if output != "" {
		ev = ev.Str("output", output)
	}
	ev.Msg("operation finished")
}

func (s *Service) fail(err error, mode, input string) error {
	ev := log.Warn().Err(err).Str("mode", mode)
	if input != "" {
		ev = ev.Str("input", input)
	}
	ev.Msg("operation failed")
	return err
}

