//    Topic Distillery
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lnch

import (
	"github.com/e-gun/TopicDistillery/internal/mm"
)

// NewMessageMakerConfigured - a MessageMaker that follows Config and reports 'caller'
func NewMessageMakerConfigured(caller string) *mm.MessageMaker {
	m := Msg.Clone(caller)
	if Config != nil {
		m.LLvl = Config.LogLevel
		m.BW = Config.BlackAndWhite
	}
	return m
}

func UpdateMessageMakerWithConfig(m *mm.MessageMaker) {
	m.SetBW(Config.BlackAndWhite)
	m.LLvl = Config.LogLevel
}
