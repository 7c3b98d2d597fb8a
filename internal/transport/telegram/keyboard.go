package telegram

import (
	"strconv"

	"github.com/go-telegram/bot/models"
)

// maxAssignees caps the count selection offered in the dialog.
const maxAssignees = 3

func destinationFor(chatID int64) string {
	return strconv.FormatInt(chatID, 10)
}

func mainMenuKeyboard() models.ReplyMarkup {
	return &models.ReplyKeyboardMarkup{
		Keyboard: [][]models.KeyboardButton{{
			{Text: menuConfigureButton},
			{Text: menuAssignButton},
		}},
		ResizeKeyboard: true,
	}
}

// toggleKeyboard renders one row per roster member with a checkbox marker,
// plus the Next/Cancel control row.
func toggleKeyboard(usernames []string, selected map[string]struct{}) *models.InlineKeyboardMarkup {
	rows := make([][]models.InlineKeyboardButton, 0, len(usernames)+1)
	for _, u := range usernames {
		marker := "☑️ "
		if _, ok := selected[u]; ok {
			marker = "✅ "
		}
		rows = append(rows, []models.InlineKeyboardButton{{
			Text:         marker + u,
			CallbackData: cbTogglePrefix + u,
		}})
	}
	rows = append(rows, []models.InlineKeyboardButton{
		{Text: "Next ▶️", CallbackData: cbNext},
		{Text: "Cancel", CallbackData: cbCancel},
	})
	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func policyKeyboard() *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{{
			{Text: "Round-Robin", CallbackData: cbPolicyPrefix + "round"},
			{Text: "Random", CallbackData: cbPolicyPrefix + "random"},
		}},
	}
}

func countKeyboard() *models.InlineKeyboardMarkup {
	row := make([]models.InlineKeyboardButton, 0, maxAssignees)
	for i := 1; i <= maxAssignees; i++ {
		n := strconv.Itoa(i)
		row = append(row, models.InlineKeyboardButton{Text: n, CallbackData: cbCountPrefix + n})
	}
	return &models.InlineKeyboardMarkup{InlineKeyboard: [][]models.InlineKeyboardButton{row}}
}
