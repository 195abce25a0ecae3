package bot

import (
	"errors"
	"fmt"

	"github.com/geneotech/GainsMUD/pkg/burn"
	"github.com/geneotech/GainsMUD/pkg/common"
	"github.com/geneotech/GainsMUD/pkg/format"
	"github.com/geneotech/GainsMUD/pkg/game"
	"github.com/geneotech/GainsMUD/pkg/gamecfg"
	"github.com/geneotech/GainsMUD/pkg/render"
)

// Service wires the command handlers to the game engine and the burn
// aggregator.
type Service struct {
	engine *game.Engine
	burns  *burn.Aggregator
	cfg    *gamecfg.Provider
}

// NewService creates the command handler service.
func NewService(engine *game.Engine, burns *burn.Aggregator, cfg *gamecfg.Provider) *Service {
	return &Service{engine: engine, burns: burns, cfg: cfg}
}

// RegisterAll registers every supported command on the registry.
func (s *Service) RegisterAll(r *Registry) error {
	commands := map[string]Handler{
		"sup":   s.Sup,
		"whale": s.Whale,
		"drag":  s.Drag,
		"gmud":  s.Gmud,
		"burn":  s.Burn,
		"burnt": s.Burnt,
		"burnd": s.Burnd,
	}
	for name, handler := range commands {
		if err := r.Register(name, handler); err != nil {
			return err
		}
	}
	return nil
}

// Sup attacks the primary boss.
func (s *Service) Sup(scope *common.Scope, cmd Command) (*Reply, error) {
	return s.attack(scope, cmd, game.VariantBoss)
}

// Whale attacks the secondary boss.
func (s *Service) Whale(scope *common.Scope, cmd Command) (*Reply, error) {
	return s.attack(scope, cmd, game.VariantWhale)
}

func (s *Service) attack(scope *common.Scope, cmd Command, variant game.Variant) (*Reply, error) {
	res, err := s.engine.ProcessAttack(scope.Ctx, variant, cmd.Caller, cmd.Timestamp)
	if err != nil {
		return s.battleErrorReply(err, "attack")
	}
	return s.battleReply(res, variant), nil
}

// Drag shows the boss status without attacking.
func (s *Service) Drag(scope *common.Scope, cmd Command) (*Reply, error) {
	res, err := s.engine.ProcessStatus(scope.Ctx, cmd.Caller, cmd.Timestamp)
	if err != nil {
		return s.battleErrorReply(err, "check status")
	}
	return s.battleReply(res, game.VariantBoss), nil
}

// Gmud shows the damage leaderboard.
func (s *Service) Gmud(scope *common.Scope, cmd Command) (*Reply, error) {
	players, err := s.engine.Leaderboard(scope.Ctx, game.VariantBoss)
	if err != nil {
		return nil, err
	}
	if len(players) == 0 {
		return &Reply{Text: "No attacks have been recorded yet"}, nil
	}
	return &Reply{Text: render.Leaderboard(players), Preformatted: true}, nil
}

// Burn shows how much was burned on specific days.
func (s *Service) Burn(scope *common.Scope, cmd Command) (*Reply, error) {
	return s.burnReport(scope, cmd, burn.ModeDaily)
}

// Burnt shows cumulative burn since specific days.
func (s *Service) Burnt(scope *common.Scope, cmd Command) (*Reply, error) {
	return s.burnReport(scope, cmd, burn.ModeCumulative)
}

// Burnd is the deprecated daily-burn command name.
func (s *Service) Burnd(scope *common.Scope, cmd Command) (*Reply, error) {
	return &Reply{Text: "/burnd has been renamed to just /burn.\nUse /burnt for cumulative burn."}, nil
}

func (s *Service) burnReport(scope *common.Scope, cmd Command, mode burn.Mode) (*Reply, error) {
	report, err := s.burns.Report(scope.Ctx, cmd.Args, mode, cmd.Timestamp)
	if err != nil {
		var uerr *burn.UserError
		if errors.As(err, &uerr) {
			return &Reply{Text: "❌ " + uerr.Error()}, nil
		}
		scope.Log.Warnf("burn report failed: %v", err)
		return &Reply{Text: "❌ Failed to fetch supply history."}, nil
	}
	return &Reply{Text: report, Preformatted: true}, nil
}

func (s *Service) battleReply(res *game.Result, variant game.Variant) *Reply {
	if res.Mode == game.ModeInitialized {
		return &Reply{Text: render.InitializedMessage(res)}
	}

	cfg := s.cfg.Snapshot()
	vcfg := &cfg.Boss
	if variant == game.VariantWhale {
		vcfg = &cfg.Whale
	}
	return &Reply{Text: render.Panel(res, vcfg), Preformatted: true}
}

func (s *Service) battleErrorReply(err error, verb string) (*Reply, error) {
	var cd *game.CooldownError
	if errors.As(err, &cd) {
		return &Reply{Text: fmt.Sprintf("⏳ You can %s again in: %s", verb, format.Duration(cd.Remaining))}, nil
	}
	var fe *game.FetchError
	if errors.As(err, &fe) {
		return &Reply{Text: "❌ Failed to fetch GNS supply. Try again later."}, nil
	}
	return nil, err
}
