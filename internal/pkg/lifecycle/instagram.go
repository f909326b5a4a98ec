package lifecycle

import (
	"Postdeck/internal/model"
	"time"
)

// instagramTransition pending -> approved -> posted, pending | approved -> failed
func instagramTransition(from model.InstagramStatus, op Op) (model.InstagramStatus, bool) {
	switch op {
	case OpApprove:
		if from == model.InstagramPending {
			return model.InstagramApproved, true
		}
	case OpMarkPosted:
		if from == model.InstagramApproved {
			return model.InstagramPosted, true
		}
	case OpMarkFailed:
		switch from {
		case model.InstagramPending, model.InstagramApproved:
			return model.InstagramFailed, true
		}
	}
	return from, false
}

func (e *Engine) instagramStep(p *model.InstagramPost, op Op) (*model.InstagramPost, error) {
	if p == nil {
		return nil, illegal(op, "<nil>")
	}
	to, ok := instagramTransition(p.Status, op)
	if !ok {
		return nil, illegal(op, string(p.Status))
	}
	next := p.Clone()
	next.Status = to
	return next, nil
}

func (e *Engine) editable(p *model.InstagramPost, op Op) error {
	if p == nil {
		return illegal(op, "<nil>")
	}
	if p.Status == model.InstagramPosted && !e.allowPostedEdits {
		return illegal(op, string(p.Status))
	}
	return nil
}

func (e *Engine) ApproveInstagram(p *model.InstagramPost) (*model.InstagramPost, error) {
	return e.instagramStep(p, OpApprove)
}

func (e *Engine) MarkInstagramPosted(p *model.InstagramPost, externalID string, now time.Time) (*model.InstagramPost, error) {
	next, err := e.instagramStep(p, OpMarkPosted)
	if err != nil {
		return nil, err
	}
	postedAt := now.UTC()
	next.PostedTime = &postedAt
	if externalID != "" {
		next.InstagramID = &externalID
	}
	return next, nil
}

func (e *Engine) MarkInstagramFailed(p *model.InstagramPost) (*model.InstagramPost, error) {
	return e.instagramStep(p, OpMarkFailed)
}

func (e *Engine) EditCaption(p *model.InstagramPost, caption string) (*model.InstagramPost, error) {
	if err := e.editable(p, OpEdit); err != nil {
		return nil, err
	}
	next := p.Clone()
	next.Caption = caption
	return next, nil
}

// AttachImage 绑定外部生成的图片
func (e *Engine) AttachImage(p *model.InstagramPost, imageURL string) (*model.InstagramPost, error) {
	if err := e.editable(p, OpAttachImage); err != nil {
		return nil, err
	}
	next := p.Clone()
	next.ImageURL = imageURL
	return next, nil
}
