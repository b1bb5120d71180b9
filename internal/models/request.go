package models

type GenerateArticleRequest struct {
	Prompt string `json:"prompt" example:"Write an article about remote work"`
	// Length is the max token budget for the article. Non-positive values
	// fall back to 800.
	Length int `json:"length" example:"800"`
}

type GenerateBlogTitleRequest struct {
	Prompt string `json:"prompt" example:"Coffee shop"`
}

type GenerateImageRequest struct {
	Prompt string `json:"prompt" example:"Generate an image of a lighthouse in Anime style"`
	// Publish makes the creation visible in the public gallery.
	Publish bool `json:"publish"`
}

type ToggleLikeRequest struct {
	CreationID int64 `json:"creationId" example:"42"`
}
