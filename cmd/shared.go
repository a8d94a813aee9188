package cmd

import (
	"fmt"
	"io"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/eslsoft/spellnet/internal/adapter/repository"
	"github.com/eslsoft/spellnet/internal/infrastructure/config"
	"github.com/eslsoft/spellnet/internal/infrastructure/database"
	"github.com/eslsoft/spellnet/internal/infrastructure/server"
	repoport "github.com/eslsoft/spellnet/internal/repository"
)

// store is what the offline commands need: no HTTP server, no scheduler.
type store struct {
	cfg     *config.Config
	logger  *logrus.Logger
	db      *sqlx.DB
	cleanup func()
}

func openStore() (*store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("加载配置失败: %w", err)
	}
	logger, err := server.NewLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("创建日志失败: %w", err)
	}
	db, cleanup, err := database.NewDB(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}
	return &store{cfg: cfg, logger: logger, db: db, cleanup: cleanup}, nil
}

func (s *store) words() repoport.WordRepository {
	return repository.NewWordRepository(s.db, s.cfg)
}

func bindFlagToViper(key string, flag *pflag.Flag) {
	if flag == nil {
		return
	}
	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// cliProgress prints row progress of an import or export to out.
type cliProgress struct {
	out         io.Writer
	action      string
	total       int
	count       int
	lastPrinted int
	step        int
}

func newCLIProgress(out io.Writer, action string) *cliProgress {
	return &cliProgress{out: out, action: action}
}

func (p *cliProgress) Start(total int) {
	if total < 0 {
		total = 0
	}
	p.total = total
	p.count = 0
	p.lastPrinted = 0
	p.step = progressStep(total)
	fmt.Fprintf(p.out, "开始%s (共 %d 行)\n", p.action, total)
}

func (p *cliProgress) Increment(delta int) {
	if delta <= 0 {
		return
	}
	p.count += delta
	step := p.step
	if step <= 0 {
		step = 1
	}
	if p.count == p.total || p.lastPrinted == 0 || p.count-p.lastPrinted >= step {
		p.printProgress()
		p.lastPrinted = p.count
	}
}

func (p *cliProgress) Finish() {
	if p.count != p.lastPrinted {
		p.printProgress()
	}
	if p.total > 0 {
		fmt.Fprintf(p.out, "完成%s: %d/%d 行\n", p.action, p.count, p.total)
	} else {
		fmt.Fprintf(p.out, "完成%s: %d 行\n", p.action, p.count)
	}
}

func (p *cliProgress) printProgress() {
	if p.total > 0 {
		fmt.Fprintf(p.out, "%s进度: %d/%d\n", p.action, p.count, p.total)
	} else {
		fmt.Fprintf(p.out, "%s进度: 已处理 %d 行\n", p.action, p.count)
	}
}

func progressStep(total int) int {
	if total <= 0 {
		return 1000
	}
	step := total / 20
	if step < 1 {
		step = 1
	}
	if step > 1000 {
		step = 1000
	}
	return step
}
