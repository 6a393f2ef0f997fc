package cli

import (
	"fmt"
	"time"

	"github.com/yildizm/smishguard/internal/api"
	"github.com/yildizm/smishguard/internal/config"
	"github.com/yildizm/smishguard/internal/logger"
	"github.com/yildizm/smishguard/internal/nav"
	"github.com/yildizm/smishguard/internal/submission"
)

// session wires one controller to the analysis service
type session struct {
	ctrl   *nav.Controller
	client *api.Client
	core   *submission.Core
}

type sessionOptions struct {
	// timeout overrides the configured api timeout when non-zero
	timeout time.Duration
	channel string
	log     *logger.Logger
}

func newSession(cfg *config.Config, opts sessionOptions) (*session, error) {
	log := opts.log
	if log == nil {
		log = logger.Nop()
	}

	apiCfg := cfg.APIClientConfig(userAgent())
	if opts.timeout > 0 {
		apiCfg.Timeout = opts.timeout
	}

	client, err := api.New(apiCfg, api.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("failed to create api client: %w", err)
	}

	channel := cfg.API.Channel
	if opts.channel != "" {
		channel = opts.channel
	}

	ctrl := nav.NewController(log)
	core := submission.NewCore(ctrl, client,
		submission.WithChannel(channel),
		submission.WithLogger(log))

	return &session{ctrl: ctrl, client: client, core: core}, nil
}

var buildVersion = "dev"

func userAgent() string {
	return api.DefaultUserAgent + "/" + buildVersion
}

// outcomeState rebuilds a controller snapshot from one run, for callers
// that may have started another generation since
func outcomeState(text string, out submission.Outcome) nav.State {
	st := nav.State{
		Screen:     out.Next,
		Text:       text,
		Response:   out.Response,
		Generation: out.Generation,
	}
	if out.Err != nil {
		st.Err = out.Err.Error()
		st.Response = nil
	}
	return st
}
