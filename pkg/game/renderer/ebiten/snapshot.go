package ebiten

import (
	"github.com/leonelquinteros/gotext"
	"go.uber.org/zap"

	"dottap/pkg/game/devtools"
	"dottap/pkg/game/trial"
)

// saveSnapshot writes the feedback layout as HTML. Outside the feedback
// phase there is nothing to capture.
func (e *EbitenRenderer) saveSnapshot() {
	v := e.view
	if v.shown != trial.PhaseFeedback {
		return
	}

	name, err := devtools.SaveFeedbackHTML("", v.session, v.surface.Scale(), e.now())
	if err != nil {
		e.logger.Warn("Snapshot failed", zap.Error(err))
		return
	}
	e.logger.Info(gotext.Get("SNAPSHOT_WRITTEN", name))
}
