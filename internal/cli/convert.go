package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/roboco-io/jpeg2pdf/internal/config"
	"github.com/roboco-io/jpeg2pdf/internal/parser"
	"github.com/roboco-io/jpeg2pdf/internal/parser/jpeg"
	"github.com/roboco-io/jpeg2pdf/internal/pdf"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// convertOptions holds the flags shared by the root shorthand and convert.
type convertOptions struct {
	removeOptional bool
	configPath     string
	verbose        bool
	quiet          bool
}

func (o *convertOptions) register(fs *pflag.FlagSet) {
	fs.BoolVarP(&o.removeOptional, "remove-optional-metadata", "r", false, "디코딩에 필요 없는 메타데이터 세그먼트 제거")
	fs.StringVar(&o.configPath, "config", "", "설정 파일 경로 (기본: ~/.jpeg2pdf/config.yaml)")
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "상세 출력")
	fs.BoolVarP(&o.quiet, "quiet", "q", false, "조용한 모드")
}

var convertOpts convertOptions

var convertCmd = &cobra.Command{
	Use:   "convert <input.jpg> <output.pdf>",
	Short: "JPEG 이미지를 PDF로 변환",
	Long: `JPEG 이미지를 단일 페이지 PDF로 변환합니다.

이미지 데이터는 다시 압축하지 않고 DCTDecode 스트림으로 그대로 저장됩니다.
--remove-optional-metadata 플래그를 사용하면 EXIF, ICC 프로파일, 주석 등
디코딩에 필요 없는 세그먼트를 제거합니다.

출력 파일은 변환이 모두 성공한 경우에만 만들어집니다.

환경 변수:
  JPEG2PDF_REMOVE_OPTIONAL=true  선택 메타데이터 제거
  JPEG2PDF_PDF_VERSION=1.7       PDF 헤더 버전

예시:
  jpeg2pdf convert photo.jpg photo.pdf
  jpeg2pdf convert photo.jpg photo.pdf -r -v`,
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConversion(cmd, args[0], args[1], convertOpts)
	},
}

func init() {
	convertOpts.register(convertCmd.Flags())
	rootCmd.AddCommand(convertCmd)
}

func runConversion(cmd *cobra.Command, inputPath, outputPath string, opts convertOptions) error {
	stderr := cmd.ErrOrStderr()
	verbose := opts.verbose && !opts.quiet

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("remove-optional-metadata") {
		cfg.Convert.RemoveOptionalMetadata = opts.removeOptional
	}

	format, err := detectFormat(inputPath)
	if err != nil {
		return err
	}
	if verbose {
		fmt.Fprintf(stderr, "입력 파일: %s\n", inputPath)
		fmt.Fprintf(stderr, "파일 형식: %s\n", format)
	}

	p, err := parser.Open(inputPath, format, parser.Options{
		RemoveOptionalMetadata: cfg.Convert.RemoveOptionalMetadata,
	})
	if err != nil {
		return fmt.Errorf("입력 파일을 열 수 없습니다: %w", err)
	}
	defer p.Close()

	doc, err := p.Parse()
	if err != nil {
		return fmt.Errorf("%s: %w", parseStage(err), err)
	}

	if verbose {
		for _, img := range doc.Images() {
			fmt.Fprintf(stderr, "이미지: %dx%d, %s, %d비트\n", img.Width, img.Height, img.ColorSpace, img.BitsPerComponent)
			fmt.Fprintf(stderr, "밀도: %d x %d %s\n", img.Density.X, img.Density.Y, img.Density.Unit)
			fmt.Fprintf(stderr, "JPEG 스트림: %d 바이트\n", img.Size)
		}
	}

	doc.Metadata.Creator = "jpeg2pdf " + version
	doc.Metadata.Created = time.Now()

	out, err := pdf.Build(doc, cfg.PDFOptions())
	if err != nil {
		return fmt.Errorf("PDF 생성 실패: %w", err)
	}

	if err := pdf.WriteFile(outputPath, out); err != nil {
		return fmt.Errorf("파일 저장 실패: %w", err)
	}

	if verbose {
		fmt.Fprintf(stderr, "페이지 크기: %d x %d pt\n", out.Width, out.Height)
		// 저장된 파일을 다시 읽어 확인한다
		if s, err := pdf.ReadFile(outputPath); err != nil {
			fmt.Fprintf(stderr, "경고: 출력 확인 실패: %v\n", err)
		} else {
			fmt.Fprintf(stderr, "출력 확인: PDF %s, %d 페이지, 이미지 스트림 %d 바이트\n",
				s.Version, s.Pages, len(s.Image.Data))
		}
	}
	if !opts.quiet {
		fmt.Fprintf(stderr, "변환 완료: %s\n", outputPath)
	}

	return nil
}

// parseStage names the step that rejected the image: the container structure
// or the check that it can be embedded as is.
func parseStage(err error) string {
	switch {
	case jpeg.IsStructural(err):
		return "이미지 파싱 실패"
	case errors.Is(err, jpeg.ErrUnsupported):
		return "이미지 검증 실패"
	default:
		return "이미지 읽기 실패"
	}
}

// loadConfig returns the validated configuration with environment overrides.
func loadConfig(path string) (*config.Config, error) {
	var loader *config.Loader
	if path != "" {
		loader = config.NewLoaderWithPath(path)
	} else {
		l, err := config.NewLoader()
		if err != nil {
			return nil, fmt.Errorf("설정 로더 초기화 실패: %w", err)
		}
		loader = l
	}

	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("설정 로드 실패: %w", err)
	}
	return cfg, nil
}

// detectFormat accepts a file whose extension or leading bytes mark it as
// JPEG. Content wins over the extension.
func detectFormat(path string) (parser.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return parser.FormatUnknown, fmt.Errorf("입력 파일을 열 수 없습니다: %w", err)
	}
	defer f.Close()

	format, err := parser.DetectFormatFromReader(f)
	if err != nil || format == parser.FormatUnknown {
		format = parser.DetectFormat(path)
	}
	if format == parser.FormatUnknown {
		return format, fmt.Errorf("지원하지 않는 파일 형식입니다: %s", filepath.Ext(path))
	}
	return format, nil
}

// parseImage reads the descriptor of a JPEG file without validating it.
func parseImage(path string) (*jpeg.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("입력 파일을 열 수 없습니다: %w", err)
	}
	defer f.Close()

	img, err := jpeg.Read(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("이미지 파싱 실패: %w", err)
	}
	return img, nil
}
