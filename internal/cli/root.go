// Package cli implements the jpeg2pdf command line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var version = "dev"

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

var rootOpts convertOptions

var rootCmd = &cobra.Command{
	Use:   "jpeg2pdf <input.jpg> <output.pdf>",
	Short: "JPEG 이미지를 단일 페이지 PDF로 변환",
	Long: `jpeg2pdf는 JPEG 이미지를 다시 압축하지 않고 그대로 담은
단일 페이지 PDF를 만듭니다.

페이지 크기는 JFIF 밀도 정보(dpi 또는 dpcm)로 계산되며,
밀도 정보가 없는 이미지는 변환하지 않습니다.

예시:
  jpeg2pdf photo.jpg photo.pdf
  jpeg2pdf -r photo.jpg photo.pdf
  jpeg2pdf inspect photo.jpg`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 0 && len(args) != 2 {
			return fmt.Errorf("입력 파일과 출력 파일을 지정해야 합니다 (인자 %d개)", len(args))
		}
		return nil
	},
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runConversion(cmd, args[0], args[1], rootOpts)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "버전 정보 표시",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "jpeg2pdf %s\n", version)
	},
}

func init() {
	rootOpts.register(rootCmd.Flags())
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
