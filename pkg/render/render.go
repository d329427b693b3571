// Package render rasterizes DOT graph descriptions, primarily the
// fiber graphs produced by [github.com/umonteiro/toric/pkg/ip].
//
// Rendering goes through the embedded Graphviz runtime, so no external
// tools are required:
//
//	dot := graph.DOT(optimum)
//	svg, err := render.Render(ctx, []byte(dot), render.FormatSVG)
package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"
)

// Format selects the output encoding.
type Format string

// Supported output formats.
const (
	FormatDOT Format = "dot"
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// ParseFormat maps a format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatDOT, FormatSVG, FormatPNG:
		return Format(s), nil
	default:
		return "", fmt.Errorf("render: unknown format %q (want dot, svg or png)", s)
	}
}

// Render converts DOT source into the requested format. FormatDOT
// returns a copy of the input unchanged.
func Render(ctx context.Context, dot []byte, f Format) ([]byte, error) {
	switch f {
	case FormatDOT:
		return append([]byte(nil), dot...), nil
	case FormatSVG:
		out, err := viaGraphviz(ctx, dot, graphviz.SVG)
		if err != nil {
			return nil, err
		}
		return fixViewBox(out), nil
	case FormatPNG:
		return viaGraphviz(ctx, dot, graphviz.PNG)
	default:
		return nil, fmt.Errorf("render: unknown format %q", f)
	}
}

// viaGraphviz lays out and rasterizes dot with the Graphviz runtime.
func viaGraphviz(ctx context.Context, dot []byte, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes(dot)
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgOpenTag = regexp.MustCompile(`<svg[^>]*>`)
	svgViewBox = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// fixViewBox rewrites the root SVG element with pixel dimensions taken
// from the view box. Graphviz emits pt-based width and height, which
// scale inconsistently when the image is embedded.
func fixViewBox(svg []byte) []byte {
	match := svgViewBox.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgOpenTag.ReplaceAll(svg, []byte(tag))
}
