package main

import (
	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/xgraphix/internal/logger"
	"github.com/Faultbox/xgraphix/internal/session"
)

const dialogTitle = "xgraphix"

// statusSink receives the latest status line.
type statusSink interface {
	SetTitle(title string)
}

// dialogNotifier pops up failures and warnings and shows other messages in
// the window title.
type dialogNotifier struct {
	status statusSink
	title  string
	popups bool
}

func (n *dialogNotifier) Notify(kind session.Kind, message string) {
	switch kind {
	case session.Failure:
		logger.Warn("diagnostic", zap.String("message", message))
		if n.popups {
			dialog.Message("%s", message).Title(dialogTitle).Error()
		}
	case session.Warning:
		logger.Warn("diagnostic", zap.String("message", message))
		if n.popups {
			dialog.Message("%s", message).Title(dialogTitle).Info()
		}
	default:
		logger.Info(message)
	}

	if n.status != nil {
		n.status.SetTitle(n.title + " - " + message)
	}
}

// dialogConfirmer asks yes/no questions with a native dialog. With popups
// disabled every question is answered with yes.
type dialogConfirmer struct {
	popups bool
}

func (c dialogConfirmer) Confirm(message string) bool {
	if !c.popups {
		logger.Info("confirmed", zap.String("question", message))
		return true
	}
	return dialog.Message("%s", message).Title(dialogTitle).YesNo()
}
