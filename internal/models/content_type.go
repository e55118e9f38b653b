package models

import (
	"errors"
	"strings"
)

// ContentType is the category of short-form content a project produces.
// Categories outside the named set are accepted and use the default
// script, image and template choices.
type ContentType string

const (
	ContentTikTok       ContentType = "tiktok"
	ContentReels        ContentType = "reels"
	ContentShorts       ContentType = "shorts"
	ContentVSL          ContentType = "vsl"
	ContentAds          ContentType = "ads"
	ContentRoteiro      ContentType = "roteiro"
	ContentCustom       ContentType = "custom"
	ContentPlanejamento ContentType = "planejamento"
	ContentProduto      ContentType = "produto"
	ContentAnalise      ContentType = "analise"
)

var ErrEmptyContentType = errors.New("content type is required")

var contentTypes = []ContentType{
	ContentTikTok,
	ContentReels,
	ContentShorts,
	ContentVSL,
	ContentAds,
	ContentRoteiro,
	ContentCustom,
	ContentPlanejamento,
	ContentProduto,
	ContentAnalise,
}

// ContentTypes lists the named categories.
func ContentTypes() []ContentType {
	out := make([]ContentType, len(contentTypes))
	copy(out, contentTypes)
	return out
}

// ParseContentType normalizes s to lower case. Only a blank value is an error.
func ParseContentType(s string) (ContentType, error) {
	candidate := ContentType(strings.ToLower(strings.TrimSpace(s)))
	if candidate == "" {
		return "", ErrEmptyContentType
	}
	return candidate, nil
}

// Known reports whether t is one of the named categories.
func (t ContentType) Known() bool {
	for _, known := range contentTypes {
		if known == t {
			return true
		}
	}
	return false
}

// IsVertical reports whether the category renders in 9:16.
func (t ContentType) IsVertical() bool {
	switch t {
	case ContentTikTok, ContentReels, ContentShorts:
		return true
	default:
		return false
	}
}
