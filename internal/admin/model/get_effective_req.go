package model

import "strings"

type GetEffectiveReq struct {
	UserID   string `query:"user_id" validate:"required,max=64"`
	PagePath string `query:"page_path" validate:"required,max=128,startswith=/"`
}

func (r *GetEffectiveReq) Validate() error {
	r.UserID = strings.TrimSpace(r.UserID)
	r.PagePath = strings.TrimSpace(r.PagePath)

	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}
	return nil
}
