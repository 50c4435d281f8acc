package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/roboco-io/jpeg2pdf/internal/parser/jpeg"
	"github.com/roboco-io/jpeg2pdf/internal/pdf"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	inspectFormat         string
	inspectPrettyPrint    bool
	inspectRemoveOptional bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "JPEG 파일 구조 분석",
	Long: `JPEG 파일의 헤더 세그먼트와 이미지 정보를 표시합니다.

변환에 필요한 세그먼트와 제거할 수 있는 세그먼트를 구분하여 보여주며,
PDF 페이지 크기와 변환 가능 여부도 함께 표시합니다.
출력 형식은 텍스트, JSON, YAML을 지원합니다.

예시:
  jpeg2pdf inspect photo.jpg
  jpeg2pdf inspect photo.jpg --format json
  jpeg2pdf inspect photo.jpg -f yaml -r`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runInspect,
}

func init() {
	inspectCmd.Flags().StringVarP(&inspectFormat, "format", "f", "text", "출력 형식 (text, json, yaml)")
	inspectCmd.Flags().BoolVar(&inspectPrettyPrint, "pretty", true, "JSON 들여쓰기 적용")
	inspectCmd.Flags().BoolVarP(&inspectRemoveOptional, "remove-optional-metadata", "r", false, "제거 후 남는 세그먼트 표시")

	rootCmd.AddCommand(inspectCmd)
}

// inspectReport is the structure printed by the inspect command.
type inspectReport struct {
	File        string          `json:"file" yaml:"file"`
	Size        int64           `json:"size" yaml:"size"`
	Width       uint32          `json:"width" yaml:"width"`
	Height      uint32          `json:"height" yaml:"height"`
	BitDepth    uint8           `json:"bit_depth" yaml:"bit_depth"`
	Components  uint8           `json:"components" yaml:"components"`
	ColorSpace  string          `json:"color_space" yaml:"color_space"`
	Density     densityReport   `json:"density" yaml:"density"`
	Adobe       *adobeReport    `json:"adobe,omitempty" yaml:"adobe,omitempty"`
	Segments    []segmentReport `json:"segments" yaml:"segments"`
	ScanBytes   int             `json:"scan_bytes" yaml:"scan_bytes"`
	OutputBytes int             `json:"output_bytes" yaml:"output_bytes"`
	Page        *pageReport     `json:"page,omitempty" yaml:"page,omitempty"`
	Supported   bool            `json:"supported" yaml:"supported"`
	Problems    []string        `json:"problems,omitempty" yaml:"problems,omitempty"`
}

type densityReport struct {
	Unit string `json:"unit" yaml:"unit"`
	X    uint16 `json:"x" yaml:"x"`
	Y    uint16 `json:"y" yaml:"y"`
}

type adobeReport struct {
	Version   uint16 `json:"version" yaml:"version"`
	Transform uint8  `json:"transform" yaml:"transform"`
}

type segmentReport struct {
	Marker   string `json:"marker" yaml:"marker"`
	Code     string `json:"code" yaml:"code"`
	Length   int    `json:"length" yaml:"length"`
	Required bool   `json:"required" yaml:"required"`
	Kept     bool   `json:"kept" yaml:"kept"`
}

type pageReport struct {
	Width  int64 `json:"width_pt" yaml:"width_pt"`
	Height int64 `json:"height_pt" yaml:"height_pt"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	path := args[0]

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("입력 파일을 열 수 없습니다: %w", err)
	}

	img, err := parseImage(path)
	if err != nil {
		return err
	}

	report := buildReport(img, inspectRemoveOptional)
	report.File = path
	report.Size = info.Size()

	return writeReport(cmd.OutOrStdout(), report, inspectFormat)
}

func buildReport(img *jpeg.Image, removeOptional bool) *inspectReport {
	r := &inspectReport{
		Width:      img.Width,
		Height:     img.Height,
		BitDepth:   img.BitDepth,
		Components: img.Components,
		ColorSpace: img.ColorSpace.String(),
		Density: densityReport{
			Unit: img.DensityUnit.String(),
			X:    img.DensityX,
			Y:    img.DensityY,
		},
		ScanBytes: len(img.ScanData),
		Supported: true,
	}
	if img.Adobe != nil {
		r.Adobe = &adobeReport{Version: img.Adobe.Version, Transform: img.Adobe.Transform}
	}

	// SOI + 세그먼트 + 스캔 데이터
	r.OutputBytes = 2 + len(img.ScanData)
	for _, seg := range img.LeadingSegments {
		kept := seg.Required || !removeOptional
		r.Segments = append(r.Segments, segmentReport{
			Marker:   seg.Marker.Name(),
			Code:     fmt.Sprintf("0xFF%02X", uint8(seg.Marker)),
			Length:   seg.Len(),
			Required: seg.Required,
			Kept:     kept,
		})
		if kept {
			r.OutputBytes += seg.Size()
		}
	}

	if err := img.Validate(); err != nil {
		r.Supported = false
		r.Problems = append(r.Problems, err.Error())
	}
	width, height, err := pdf.PageSize(img.ImageBlock(nil))
	if err != nil {
		r.Supported = false
		r.Problems = append(r.Problems, err.Error())
	} else {
		r.Page = &pageReport{Width: width, Height: height}
	}

	return r
}

func writeReport(w io.Writer, r *inspectReport, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		if inspectPrettyPrint {
			enc.SetIndent("", "  ")
		}
		return enc.Encode(r)

	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()

	case "text":
		return writeReportText(w, r)

	default:
		return fmt.Errorf("지원하지 않는 출력 형식: %s", format)
	}
}

func writeReportText(w io.Writer, r *inspectReport) error {
	fmt.Fprintf(w, "파일: %s (%d 바이트)\n", r.File, r.Size)
	fmt.Fprintf(w, "크기: %d x %d 픽셀, %d비트, 컴포넌트 %d개 (%s)\n",
		r.Width, r.Height, r.BitDepth, r.Components, r.ColorSpace)
	fmt.Fprintf(w, "밀도: %d x %d %s\n", r.Density.X, r.Density.Y, r.Density.Unit)
	if r.Adobe != nil {
		fmt.Fprintf(w, "Adobe: 버전 %d, 변환 %d\n", r.Adobe.Version, r.Adobe.Transform)
	}
	if r.Page != nil {
		fmt.Fprintf(w, "페이지: %d x %d pt\n", r.Page.Width, r.Page.Height)
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "마커\t코드\t길이\t필수\t유지")
	for _, s := range r.Segments {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", s.Marker, s.Code, s.Length, mark(s.Required), mark(s.Kept))
	}
	fmt.Fprintf(tw, "SOS+\t\t%d\t%s\t%s\n", r.ScanBytes, mark(true), mark(true))
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\n출력 JPEG 스트림: %d 바이트\n", r.OutputBytes)
	if r.Supported {
		fmt.Fprintln(w, "변환 가능: 예")
		return nil
	}
	fmt.Fprintf(w, "변환 가능: 아니오 (%s)\n", strings.Join(r.Problems, "; "))
	return nil
}

func mark(b bool) string {
	if b {
		return "✓"
	}
	return "✗"
}
