package model

import "strings"

type SetCapabilityReq struct {
	UserID     string `json:"user_id" validate:"required,max=64"`
	PagePath   string `json:"page_path" validate:"required,max=128,startswith=/"`
	Capability string `json:"capability" validate:"required,oneof=create read update delete"`
	Value      bool   `json:"value"`
}

func (r *SetCapabilityReq) Validate() error {
	r.UserID = strings.TrimSpace(r.UserID)
	r.PagePath = strings.TrimSpace(r.PagePath)
	r.Capability = strings.ToLower(strings.TrimSpace(r.Capability))

	if err := GetValidator().Struct(r); err != nil {
		return FormatValidationError(err)
	}
	return nil
}
