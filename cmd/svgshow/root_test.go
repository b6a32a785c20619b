package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const drawing = `<svg xmlns="http://www.w3.org/2000/svg" width="400" height="300">
  <g id="background"><rect x="0" y="0" width="400" height="300"/></g>
  <g id="content">
    <rect id="frame1" x="10" y="20" width="80" height="40"/>
  </g>
</svg>`

const talk = `title: Demo talk
layers: [background, content]
frames:
  - id: overview
    title: Everything
    layers:
      background: {cx: 200, cy: 150, width: 400, height: 300, clip: false}
      content: {cx: 200, cy: 150, width: 400, height: 300}
  - id: zoomed
    layers:
      content: {element: frame1}
`

func writeFixtures(t *testing.T) (svgFile, framesFile string) {
	t.Helper()
	dir := t.TempDir()
	svgFile = filepath.Join(dir, "drawing.svg")
	framesFile = filepath.Join(dir, "talk.yaml")
	require.NoError(t, os.WriteFile(svgFile, []byte(drawing), 0o644))
	require.NoError(t, os.WriteFile(framesFile, []byte(talk), 0o644))
	return svgFile, framesFile
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestShowFrames(t *testing.T) {
	svgFile, framesFile := writeFixtures(t)
	dir := filepath.Dir(svgFile)
	output := filepath.Join(dir, "out.svg")
	preview := filepath.Join(dir, "out.png")

	_, err := run(t, "show", svgFile, "--frames", framesFile, "--frame", "zoomed",
		"--width", "200", "--height", "100", "-o", output, "--preview", preview)
	require.NoError(t, err)

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	s := string(content)
	assert.Contains(t, s, `width="200"`)
	assert.Contains(t, s, `clip-path="url(#svgshow-clip-path-content)"`)
	// frame1 (80x40) fitted in 200x100: scale 2.5
	assert.Contains(t, s, `transform="scale(2.5)translate(-10,-20)rotate(0,50,40)"`)

	f, err := os.Open(preview)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 100, img.Bounds().Dy())
}

func TestShowFrameByPosition(t *testing.T) {
	svgFile, framesFile := writeFixtures(t)
	out, err := run(t, "show", svgFile, "--frames", framesFile, "--frame", "2",
		"--width", "200", "--height", "100")
	require.NoError(t, err)
	assert.Contains(t, out, `scale(2.5)`)

	_, err = run(t, "show", svgFile, "--frames", framesFile, "--frame", "3")
	assert.Error(t, err)
	_, err = run(t, "show", svgFile, "--frames", framesFile, "--frame", "nope")
	assert.Error(t, err)
}

func TestShowDocument(t *testing.T) {
	svgFile, _ := writeFixtures(t)
	out, err := run(t, "show", svgFile, "--width", "800", "--height", "600", "--rotate", "90")
	require.NoError(t, err)
	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, `clip-path="url(#svgshow-clip-path-background)"`)
	assert.Contains(t, out, `rotate(-90,200,150)`)

	_, err = run(t, "show", svgFile, "--zoom", "2,400,300", "--drag", "10,10")
	assert.NoError(t, err)
	_, err = run(t, "show", svgFile, "--drag", "10")
	assert.Error(t, err)
	_, err = run(t, "show", svgFile, "--zoom", "0")
	assert.Error(t, err)
	_, err = run(t, "show", svgFile, "--layers", "missing")
	assert.Error(t, err)
}

func TestGeometry(t *testing.T) {
	svgFile, _ := writeFixtures(t)
	out, err := run(t, "geometry", svgFile, "frame1")
	require.NoError(t, err)
	assert.Contains(t, out, "cx: 50\n")
	assert.Contains(t, out, "cy: 40\n")
	assert.Contains(t, out, "width: 80\n")
	assert.NotContains(t, out, "clip")

	_, err = run(t, "geometry", svgFile, "missing")
	assert.Error(t, err)
}

func TestFrames(t *testing.T) {
	_, framesFile := writeFixtures(t)
	out, err := run(t, "frames", framesFile)
	require.NoError(t, err)
	assert.Contains(t, out, "Demo talk")
	assert.Contains(t, out, "overview")
	assert.Contains(t, out, "background,content")
}

func TestInvalidConfig(t *testing.T) {
	_, framesFile := writeFixtures(t)
	_, err := run(t, "frames", framesFile, "--error-mode", "bogus")
	assert.Error(t, err)
	_, err = run(t, "frames", framesFile, "--width", "0")
	assert.Error(t, err)
	_, err = run(t, "frames", framesFile, "--preview-format", "gif")
	assert.Error(t, err)
	_, err = run(t, "frames", framesFile, "--log-level", "loud")
	assert.Error(t, err)

	cfg := filepath.Join(filepath.Dir(framesFile), "svgshow.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("viewport:\n  width: 640\n  height: 480\nlog:\n  level: debug\n"), 0o644))
	_, err = run(t, "frames", framesFile, "--config", cfg)
	assert.NoError(t, err)
}
