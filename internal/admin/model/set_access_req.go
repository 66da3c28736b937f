package model

import "strings"

type SetAccessReq struct {
	UserID   string `json:"user_id" validate:"required,max=64"`
	PagePath string `json:"page_path" validate:"required,max=128,startswith=/"`
	Access   bool   `json:"access"`
}

func (r *SetAccessReq) Validate() error {
	r.UserID = strings.TrimSpace(r.UserID)
	r.PagePath = strings.TrimSpace(r.PagePath)

	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}
	return nil
}
