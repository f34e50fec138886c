package cli

import (
	"time"

	"github.com/ppiankov/dayfacts/internal/model"
	"github.com/ppiankov/dayfacts/internal/render"
	"github.com/ppiankov/dayfacts/internal/session"
	"github.com/ppiankov/dayfacts/internal/worker"
)

// resolveDate returns today for "" or the MM-DD date in the current year
func resolveDate(flag string) (time.Time, error) {
	now := time.Now()
	if flag == "" {
		return now, nil
	}
	d, err := worker.ParseDate(flag)
	if err != nil {
		return time.Time{}, err
	}
	return render.DayDate(now, d.Month, d.Day), nil
}

// newSession builds a session from config, optionally overriding the
// initial category
func newSession(cfg *model.Config, categoryName string) (*session.Session, error) {
	if categoryName != "" {
		cfg.Selection.Category = categoryName
	}
	opts, err := session.OptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return session.New(opts)
}
