// planner 命令行工具：读取课程文件（YAML 或 JSON），输出周学习计划。
//
//	planner -in courses.yaml                     # 文本表格输出到 stdout
//	planner -in courses.yaml -format json        # JSON
//	planner -in courses.yaml -format xlsx -out plan.xlsx
//	planner -in courses.yaml -format ics -out plan.ics
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"study-planner/backend/config"
	"study-planner/backend/internal/dto"
	"study-planner/backend/internal/repository"
	"study-planner/backend/internal/service"
	applogger "study-planner/backend/pkg/logger"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "planner: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	in       string
	out      string
	format   string
	today    string
	timezone string
	verbose  bool
}

func parseFlags(args []string) (*options, error) {
	fs := flag.NewFlagSet("planner", flag.ContinueOnError)
	opts := &options{}
	fs.StringVar(&opts.in, "in", "", "课程文件路径（YAML 或 JSON），- 表示 stdin")
	fs.StringVar(&opts.out, "out", "", "输出文件路径（xlsx/ics 必填，其余默认 stdout）")
	fs.StringVar(&opts.format, "format", "text", "输出格式: text | json | xlsx | ics")
	fs.StringVar(&opts.today, "today", "", "参考日期 YYYY-MM-DD（覆盖课程文件中的 today）")
	fs.StringVar(&opts.timezone, "tz", "Local", "时区，用于确定“今天”与日历事件时间")
	fs.BoolVar(&opts.verbose, "v", false, "输出调试日志")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if opts.in == "" {
		return nil, errors.New("缺少 -in 参数")
	}
	switch opts.format {
	case "text", "json":
	case "xlsx", "ics":
		if opts.out == "" {
			return nil, fmt.Errorf("%s 格式需要 -out 参数", opts.format)
		}
	default:
		return nil, fmt.Errorf("不支持的输出格式 %q", opts.format)
	}
	return opts, nil
}

// loadRequest 读取课程文件。YAML 是 JSON 的超集，两种格式都用 yaml.v3 解析。
func loadRequest(r io.Reader) (*dto.GeneratePlanRequest, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("读取课程文件失败: %w", err)
	}
	var req dto.GeneratePlanRequest
	if err := yaml.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("解析课程文件失败: %w", err)
	}
	return &req, nil
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	logger, err := applogger.NewCLI(opts.verbose)
	if err != nil {
		return err
	}
	defer logger.Sync()

	var in io.Reader = os.Stdin
	if opts.in != "-" {
		f, err := os.Open(opts.in)
		if err != nil {
			return fmt.Errorf("打开课程文件失败: %w", err)
		}
		defer f.Close()
		in = f
	}

	req, err := loadRequest(in)
	if err != nil {
		return err
	}
	if opts.today != "" {
		req.Today = opts.today
	}

	cfg := &config.Config{Planner: config.PlannerConfig{
		Timezone:        opts.timezone,
		ReminderMinutes: []int{30, 10},
	}}
	svc, err := service.NewService(cfg, repository.NewRepository(nil), logger)
	if err != nil {
		return err
	}

	logger.Debug("开始生成计划", zap.Int("courses", len(req.Courses)), zap.String("format", opts.format))
	start := time.Now()

	switch opts.format {
	case "xlsx", "ics":
		export := svc.Export.ExportExcel
		if opts.format == "ics" {
			export = svc.Export.ExportICS
		}
		buf, _, err := export(ctx, req)
		if err != nil {
			return err
		}
		if err := os.WriteFile(opts.out, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("写入 %s 失败: %w", opts.out, err)
		}
		logger.Info("已导出", zap.String("path", opts.out), zap.Duration("elapsed", time.Since(start)))
		return nil
	}

	resp, err := svc.Plan.Generate(ctx, req)
	if err != nil {
		return err
	}
	for _, w := range resp.Warnings {
		logger.Warn(w)
	}

	var buf bytes.Buffer
	if opts.format == "json" {
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(resp); err != nil {
			return err
		}
	} else if err := renderText(&buf, resp); err != nil {
		return err
	}

	if opts.out == "" {
		_, err := stdout.Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(opts.out, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("写入 %s 失败: %w", opts.out, err)
	}
	return nil
}
