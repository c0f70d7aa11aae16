package config

const (
	// MaxNodeIDLength is the maximum length for content node ids.
	// Ids show up in admin URLs, so they stay short.
	MaxNodeIDLength = 100

	// MaxCourseIDLength is the maximum length for course ids.
	MaxCourseIDLength = 100

	// MaxTitleLength is the maximum length for node titles and course names.
	MaxTitleLength = 255

	// MaxSubtitleLength is the maximum length for course subtitles.
	MaxSubtitleLength = 255

	// MaxURLParamLength is the maximum length for a node's public url param.
	MaxURLParamLength = 200

	// MaxDescriptionLength is the maximum length for node and course descriptions.
	MaxDescriptionLength = 5000

	// MaxMediaURLLength is the maximum length for video, cover, audio and pdf URLs.
	MaxMediaURLLength = 2048

	// MaxShareTextLength is the maximum length for a node's share text.
	MaxShareTextLength = 1000

	// MaxRichTextLength is the maximum length for a node's raw rich text.
	MaxRichTextLength = 100_000

	// MaxRequestBodyBytes caps JSON request bodies, including whole-document imports.
	MaxRequestBodyBytes = 10 << 20

	// MinJWTSecretLength is the shortest HS256 secret accepted for admin tokens.
	MinJWTSecretLength = 32
)
