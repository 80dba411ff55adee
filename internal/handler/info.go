package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/osse101/WagerBot_Go/internal/info"
)

// InfoResponse represents the structure for help responses
type InfoResponse struct {
	Platform    string `json:"platform"`
	Feature     string `json:"feature,omitempty"`
	Topic       string `json:"topic,omitempty"`
	Description string `json:"description"`
}

// HandleGetInfo serves the help topics
// @Summary Help topics
// @Description Help text for a feature or topic, or the list of features
// @Tags info
// @Produce json
// @Param platform query string false "discord (default) or plain"
// @Param feature query string false "Feature name, or a topic name to search for"
// @Param topic query string false "Topic within the feature"
// @Success 200 {object} InfoResponse
// @Failure 404 {object} ErrorResponse
// @Router /info [get]
func HandleGetInfo(loader *info.Loader, formatter *info.Formatter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		platform := strings.ToLower(GetOptionalQueryParam(r, "platform", info.PlatformDiscord))
		feature := strings.ToLower(r.URL.Query().Get("feature"))
		topic := strings.ToLower(r.URL.Query().Get("topic"))

		response := InfoResponse{Platform: platform}

		switch {
		case feature != "" && topic != "":
			topicData, ok := loader.Topic(feature, topic)
			if !ok {
				respondError(w, http.StatusNotFound, fmt.Sprintf(ErrMsgTopicNotFound, topic, feature))
				return
			}
			response.Feature = feature
			response.Topic = topic
			response.Description = formatter.FormatTopic(topicData, platform)

		case feature != "":
			if featureData, ok := loader.Feature(feature); ok {
				response.Feature = feature
				response.Description = formatter.FormatFeature(featureData, platform)
				break
			}
			// Not a feature: try it as a topic name
			topicData, featureName, found := loader.SearchTopic(feature)
			if !found {
				respondError(w, http.StatusNotFound, fmt.Sprintf(ErrMsgFeatureOrTopicMissing, feature))
				return
			}
			response.Feature = featureName
			response.Topic = topicData.Name
			response.Description = formatter.FormatTopic(topicData, platform)

		default:
			response.Description = formatter.FormatFeatureList(loader.Features(), platform)
		}

		respondJSON(w, http.StatusOK, response)
	}
}
