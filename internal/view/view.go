package view

import (
	"fmt"
	"strings"

	"github.com/slack-go/slack"
)

const (
	// FormCallbackID is carried by every modal this bot opens.
	FormCallbackID = "form_submission"

	InputBlockID  = "input_block"
	InputActionID = "input_value"

	// OpenFormActionID is the action id of the home tab button.
	OpenFormActionID = "sample_form_button"

	noTextFallback = "No text provided"
)

// BuildInputModal returns the form modal. userID is echoed back in the
// submission as private metadata.
func BuildInputModal(userID string) slack.ModalViewRequest {
	input := slack.NewInputBlock(
		InputBlockID,
		plainText("情報を入力してください"),
		nil,
		slack.NewPlainTextInputBlockElement(nil, InputActionID),
	)

	return slack.ModalViewRequest{
		Type:            slack.VTModal,
		CallbackID:      FormCallbackID,
		Title:           plainText("情報入力"),
		Submit:          plainText("送信"),
		Close:           plainText("キャンセル"),
		PrivateMetadata: userID,
		Blocks: slack.Blocks{
			BlockSet: []slack.Block{input},
		},
	}
}

// BuildResultView returns the display-only modal shown after a submission.
func BuildResultView(submittedValue string) slack.ModalViewRequest {
	section := slack.NewSectionBlock(
		slack.NewTextBlockObject(slack.MarkdownType, SubmissionText(submittedValue), false, false),
		nil, nil,
	)

	return slack.ModalViewRequest{
		Type:       slack.VTModal,
		CallbackID: FormCallbackID,
		Title:      plainText("情報入力"),
		Close:      plainText("閉じる"),
		Blocks: slack.Blocks{
			BlockSet: []slack.Block{section},
		},
	}
}

// BuildHomeView returns the App Home tab with a button that opens the form.
func BuildHomeView() slack.HomeTabViewRequest {
	welcome := slack.NewSectionBlock(
		slack.NewTextBlockObject(slack.MarkdownType, "*Welcome to the App Home!*", false, false),
		nil, nil,
	)
	actions := slack.NewActionBlock("",
		slack.NewButtonBlockElement(OpenFormActionID, "", plainText("Open Form")),
	)

	return slack.HomeTabViewRequest{
		Type: slack.VTHomeTab,
		Blocks: slack.Blocks{
			BlockSet: []slack.Block{welcome, actions},
		},
	}
}

// SubmissionText formats a submitted value for the DM and the result view.
func SubmissionText(submittedValue string) string {
	return fmt.Sprintf("あなたが入力した情報: *%s*", submittedValue)
}

// NormalizeText trims raw, falling back to a fixed placeholder when
// nothing is left.
func NormalizeText(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return noTextFallback
	}
	return text
}

func plainText(s string) *slack.TextBlockObject {
	return slack.NewTextBlockObject(slack.PlainTextType, s, false, false)
}
