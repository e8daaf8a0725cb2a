package game

import (
	"github.com/deadloct/bitheroes-hg-rounds/lib"
	log "github.com/sirupsen/logrus"
)

// ChannelLabel posts the round label to a channel as an embed title.
type ChannelLabel struct {
	sender       Sender
	doubleStruck bool
	text         string
	logger       log.FieldLogger
}

func NewChannelLabel(sender Sender, doubleStruck bool, logger log.FieldLogger) *ChannelLabel {
	return &ChannelLabel{sender: sender, doubleStruck: doubleStruck, logger: logger}
}

func (l *ChannelLabel) SetText(text string) {
	if l.doubleStruck {
		text = lib.ToDoubleStruck(text)
	}

	l.text = text
	if _, err := l.sender.SendEmbed(text, ""); err != nil {
		l.logger.Warnf("failed to update round label: %v", err)
	}
}

// Text returns the text last shown.
func (l *ChannelLabel) Text() string {
	return l.text
}
