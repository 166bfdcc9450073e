package handler

import (
	"fmt"

	"github.com/set-night/lovematch/internal/domain"
)

const (
	msgWrongFormat     = "❌ Укажите два username:\nПример: /mery @username1 @username2"
	msgInvalidUsername = "❌ Неверный формат username. Разрешены буквы, цифры и '_'."
	msgNoSession       = "❌ Сначала вызовите команду /mery."
	msgInvalidImage    = "❌ Неверный файл изображения. Попробуйте снова."
	msgDownloadFailed  = "❌ Не удалось загрузить фотографию. Попробуйте ещё раз."
	msgRenderFailed    = "❌ Произошла ошибка при создании изображения."
	msgCancelled       = "🔄 Проверка совместимости отменена."
	msgNothingToCancel = "Нет активной проверки совместимости."

	msgHelp = "💘 Проверка совместимости\n\n" +
		"/mery @username1 @username2 — начать проверку\n" +
		"/cancel — отменить текущую проверку\n\n" +
		"После команды каждый участник по очереди отправляет свою фотографию."
)

func promptFirstPhoto(user string) string {
	return fmt.Sprintf("@%s, пожалуйста, отправьте вашу фотографию.", user)
}

func promptSecondPhoto(user string) string {
	return fmt.Sprintf("@%s, теперь ваша очередь отправить фотографию.", user)
}

// Caption describes the rendered result.
func Caption(sess domain.Session, result domain.Compatibility) string {
	return fmt.Sprintf("❤️ Совместимость @%s и @%s: %d%%\n\nВердикт: %s\n",
		sess.FirstUser, sess.SecondUser, result.Percentage, result.Phrase)
}
