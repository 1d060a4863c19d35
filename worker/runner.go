package worker

import (
	"context"
	"time"

	"github.com/ormenio/engine/config"
	"github.com/ormenio/engine/controller/pb"
	"github.com/ormenio/engine/rules"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// ErrNoFrames is returned when a game is claimed before its first frame was
// written.
var ErrNoFrames = errors.New("worker: game has no frames")

// Runner runs a single game session until the player quits, the session is
// idle for too long or ctx is done. The player, the enemy and the food each
// have their own clock; all of them stop while the game is paused.
func Runner(ctx context.Context, client pb.ControllerClient, id string) error {
	resp, err := client.Status(ctx, &pb.StatusRequest{ID: id})
	if err != nil {
		return err
	}

	r := &runner{
		client: client,
		game:   resp.Game,
		frame:  resp.LastFrame,
		log:    log.WithField("GameID", id),
	}
	if r.frame == nil {
		r.log.Error("ending game without frames")
		r.end(ctx, rules.GameStatusError)
		return ErrNoFrames
	}
	return r.run(ctx)
}

type runner struct {
	client pb.ControllerClient
	game   *pb.Game
	frame  *pb.GameFrame
	log    *log.Entry

	player clock
	enemy  clock
	food   clock
	idle   *time.Timer
}

// clock is a ticker that can be stopped and restarted with a new period. A
// stopped clock never fires.
type clock struct {
	t *time.Ticker
}

func (c *clock) reset(d time.Duration) {
	c.stop()
	c.t = time.NewTicker(d)
}

func (c *clock) stop() {
	if c.t != nil {
		c.t.Stop()
		c.t = nil
	}
}

func (c *clock) C() <-chan time.Time {
	if c.t == nil {
		return nil
	}
	return c.t.C
}

func millis(ms int32) time.Duration {
	if ms < 1 {
		ms = 1
	}
	return time.Duration(ms) * time.Millisecond
}

func (r *runner) run(ctx context.Context) error {
	poll := time.NewTicker(config.InputPollInterval)
	defer poll.Stop()
	r.idle = time.NewTimer(config.IdleTimeout)
	r.stopIdle()
	defer r.idle.Stop()
	defer r.stopClocks()

	r.sync(nil, r.frame)
	r.log.Info("session running")

	for {
		var err error
		select {
		case <-ctx.Done():
			r.log.Info("session cancelled")
			r.end(ctx, rules.GameStatusComplete)
			return ctx.Err()
		case <-r.idle.C:
			if !r.frame.Paused {
				continue
			}
			r.log.Info("session idle")
			r.end(ctx, rules.GameStatusComplete)
			return nil
		case <-poll.C:
			var quit bool
			quit, err = r.applyInputs(ctx)
			if err == nil && quit {
				r.log.Info("player quit")
				r.end(ctx, rules.GameStatusComplete)
				return nil
			}
		case <-r.player.C():
			err = r.step(ctx, rules.PlayerTick)
		case <-r.enemy.C():
			err = r.step(ctx, rules.EnemyTick)
		case <-r.food.C():
			err = r.step(ctx, rules.FoodTick)
		}
		if err != nil {
			return r.fail(ctx, err)
		}
	}
}

// applyInputs drains the input queue and applies each input in order.
func (r *runner) applyInputs(ctx context.Context) (bool, error) {
	res, err := r.client.PopInputs(ctx, &pb.PopInputsRequest{ID: r.game.ID})
	if err != nil {
		return false, err
	}
	for _, in := range res.Inputs {
		if in.Type == rules.InputQuit {
			return true, nil
		}
		next, err := rules.ApplyInput(r.game, r.frame, in)
		if errors.Cause(err) == rules.ErrInvalidInput {
			r.log.WithError(err).Warn("dropping input")
			continue
		}
		if err != nil {
			return false, rulesError{err}
		}
		if err := r.push(ctx, next); err != nil {
			return false, err
		}
	}
	return false, nil
}

// step advances one of the clocks. Ticks racing a pause are dropped.
func (r *runner) step(ctx context.Context, tick func(*pb.Game, *pb.GameFrame) (*pb.GameFrame, error)) error {
	if r.frame.Paused {
		return nil
	}
	next, err := tick(r.game, r.frame)
	if err != nil {
		return rulesError{err}
	}
	return r.push(ctx, next)
}

// push writes next when it differs from the current frame and retimes the
// clocks.
func (r *runner) push(ctx context.Context, next *pb.GameFrame) error {
	if next == r.frame {
		return nil
	}
	if _, err := r.client.AddGameFrame(ctx, &pb.AddGameFrameRequest{
		ID:        r.game.ID,
		GameFrame: next,
	}); err != nil {
		return err
	}
	framesWritten.Inc()

	if next.Death != nil {
		r.log.WithFields(log.Fields{
			"Turn":  next.Turn,
			"Cause": next.Death.Cause,
			"Score": next.Death.Score,
		}).Info("round over")
	}

	prev := r.frame
	r.frame = next
	r.sync(prev, next)
	return nil
}

// sync starts, stops or retimes the clocks after the frame went from prev to
// next. A nil prev means the session just started.
func (r *runner) sync(prev, next *pb.GameFrame) {
	if next.Paused {
		if prev == nil || !prev.Paused {
			r.stopClocks()
			r.stopIdle()
			r.idle.Reset(config.IdleTimeout)
		}
		return
	}

	resumed := prev == nil || prev.Paused
	if resumed {
		r.stopIdle()
		r.food.reset(rules.FoodTickInterval * time.Millisecond)
	}
	if resumed || prev.PlayerInterval != next.PlayerInterval {
		r.player.reset(millis(next.PlayerInterval))
	}
	if resumed || prev.EnemyInterval != next.EnemyInterval {
		r.enemy.reset(millis(next.EnemyInterval))
	}
}

func (r *runner) stopIdle() {
	if !r.idle.Stop() {
		select {
		case <-r.idle.C:
		default:
		}
	}
}

func (r *runner) stopClocks() {
	r.player.stop()
	r.enemy.stop()
	r.food.stop()
}

// rulesError marks errors coming from the game rules, the game can't continue
// after one of these.
type rulesError struct{ error }

func (e rulesError) Cause() error { return e.error }

// fail ends the game as errored when the rules failed. Controller errors
// usually mean the lock is gone, the game then belongs to somebody else.
func (r *runner) fail(ctx context.Context, err error) error {
	if rerr, ok := err.(rulesError); ok {
		r.log.WithError(rerr.error).Error("ending game due to fatal error")
		r.end(ctx, rules.GameStatusError)
		return rerr.error
	}
	r.log.WithError(err).Warn("session stopped")
	return err
}

func (r *runner) end(ctx context.Context, st string) {
	ectx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
	defer cancel()
	if _, err := r.client.EndGame(ectx, &pb.EndGameRequest{ID: r.game.ID, Status: st}); err != nil {
		r.log.WithError(err).Error("unable to end game")
	}
}
