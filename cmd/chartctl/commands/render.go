package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"aqariy_web/internal/app/config"
	"aqariy_web/internal/feature/judgment/domain/entity"
	"aqariy_web/internal/feature/judgment/usecase"
	"aqariy_web/internal/feature/pricechart"
	"aqariy_web/internal/shared/i18n"
)

type renderOptions struct {
	in, out       string
	lang          string
	width, dpr    float64
	theme, format string
	color         string
	themeFile     string
	font, bold    string
}

func renderCmd() *cobra.Command {
	o := renderOptions{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a judge_price JSON result to PNG or SVG",
		Example: "  chartctl render --in result.json --out chart.png --lang ar --width 640 --dpr 2 --theme dark\n" +
			"  curl -s .../judge_price | chartctl render --in - --out - --format svg > chart.svg",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, o)
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.in, "in", "", `JSON result file ("-" for stdin)`)
	f.StringVar(&o.out, "out", "-", `output file ("-" for stdout)`)
	f.StringVar(&o.lang, "lang", "en", "label language (en or ar)")
	f.Float64Var(&o.width, "width", usecase.DefaultChartWidth, "container width in CSS pixels")
	f.Float64Var(&o.dpr, "dpr", 1, "device pixel ratio")
	f.StringVar(&o.theme, "theme", usecase.DefaultThemeName, "theme preset name")
	f.StringVar(&o.format, "format", "", "png or svg (default: from --out extension, else png)")
	f.StringVar(&o.color, "color", "", "marker color #rrggbb (default: resolved from judgment_key)")
	f.StringVar(&o.themeFile, "theme-file", os.Getenv("CHART_THEME_FILE"), "YAML theme presets")
	f.StringVar(&o.font, "font", os.Getenv("CHART_FONT_FILE"), "regular TTF font")
	f.StringVar(&o.bold, "bold-font", os.Getenv("CHART_BOLD_FONT_FILE"), "bold TTF font")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

func runRender(cmd *cobra.Command, o renderOptions) error {
	raw, err := readInput(cmd, o.in)
	if err != nil {
		return err
	}
	var res entity.JudgmentResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return fmt.Errorf("decode %s: %w", o.in, err)
	}

	fonts, err := pricechart.LoadFonts(o.font, o.bold)
	if err != nil {
		return err
	}
	themes, err := config.LoadThemes(o.themeFile)
	if err != nil {
		return err
	}

	lang := i18n.Parse(o.lang)
	color := o.color
	if color == "" {
		color = entity.Resolve(res, lang).ColorHex
	}

	uc := usecase.NewJudgmentUsecase(nil, usecase.Options{Fonts: fonts, Themes: themes})
	chart, err := uc.RenderChart(res, usecase.ChartOptions{
		Width:  o.width,
		DPR:    o.dpr,
		Lang:   lang,
		Theme:  o.theme,
		Format: formatFor(o.format, o.out),
		Color:  color,
	})
	if err != nil {
		return err
	}
	if chart.State == pricechart.Hidden {
		return fmt.Errorf("nothing rendered: width must be positive, got %g", o.width)
	}

	if o.out == "-" {
		_, err = cmd.OutOrStdout().Write(chart.Body)
		return err
	}
	if err := os.WriteFile(o.out, chart.Body, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", o.out, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%s, %d bytes)\n", o.out, chart.ContentType, len(chart.Body))
	return nil
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return b, nil
}

func formatFor(flag, out string) pricechart.Format {
	if flag != "" {
		return pricechart.Format(strings.ToLower(flag))
	}
	if strings.EqualFold(filepath.Ext(out), ".svg") {
		return pricechart.FormatSVG
	}
	return pricechart.FormatPNG
}
