package handler

import (
	"github.com/identity-platform/identity-service/internal/core/domain"
)

// userInfoResponse is the wire form of a resolved user profile. Optional
// attributes are omitted instead of rendered empty.
type userInfoResponse struct {
	ID         string `json:"id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	ProfileURL string `json:"profile_url,omitempty"`
	PictureURL string `json:"picture_url,omitempty"`
	ZoneInfo   string `json:"zone_info"`
	Locale     string `json:"locale"`
}

func toUserInfoResponse(info domain.AppUserInfo) userInfoResponse {
	return userInfoResponse{
		ID:         info.UserID().String(),
		FullName:   info.FullName(),
		Email:      info.Email().String(),
		ProfileURL: info.ProfileURL(),
		PictureURL: info.PictureURL(),
		ZoneInfo:   info.ZoneInfo().String(),
		Locale:     info.Locale().String(),
	}
}
