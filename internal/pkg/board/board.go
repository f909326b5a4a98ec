// Package board 看板视图：按状态分组推文
package board

import (
	"Postdeck/internal/model"
	"Postdeck/internal/pkg/schedule"
)

type Board struct {
	Pending   []*model.Tweet `json:"pending"`
	Approved  []*model.Tweet `json:"approved"`
	Scheduled []*model.Tweet `json:"scheduled"`
	Posted    []*model.Tweet `json:"posted"`
}

// Len 四个分组的总数
func (b *Board) Len() int {
	return len(b.Pending) + len(b.Approved) + len(b.Scheduled) + len(b.Posted)
}

// Project 分组时保持输入顺序，scheduled 组额外按发布时间升序稳定排序
// failed 的推文不出现在任何分组中
func Project(tweets []*model.Tweet) *Board {
	b := &Board{
		Pending:   []*model.Tweet{},
		Approved:  []*model.Tweet{},
		Scheduled: []*model.Tweet{},
		Posted:    []*model.Tweet{},
	}

	for _, t := range tweets {
		if t == nil {
			continue
		}
		switch t.Status {
		case model.TweetPending:
			b.Pending = append(b.Pending, t)
		case model.TweetApproved:
			b.Approved = append(b.Approved, t)
		case model.TweetScheduled:
			b.Scheduled = append(b.Scheduled, t)
		case model.TweetPosted:
			b.Posted = append(b.Posted, t)
		}
	}

	schedule.SortTweets(b.Scheduled)
	return b
}
