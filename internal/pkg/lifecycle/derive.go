package lifecycle

import (
	"Postdeck/internal/model"
)

// DeriveInstagramPost 由推文派生 Instagram 帖子，不限制推文状态，也不修改推文
func DeriveInstagramPost(t *model.Tweet) (*model.InstagramPost, error) {
	if t == nil || t.ID == 0 {
		return nil, ErrInvalidSource
	}
	sourceID := t.ID
	return &model.InstagramPost{
		SourceTweetID: &sourceID,
		Caption:       t.Content,
		ImageURL:      "",
		Status:        model.InstagramPending,
	}, nil
}
