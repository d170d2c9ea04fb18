package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/natman/internal/common"
)

const recognitionHint = "Попробуйте сделать фото другого объекта или приблизиться"

// Camera uploads an image file for statue recognition and shows the best
// match. A demo answer is announced as such before it is shown.
func (a *App) Camera(ctx context.Context, path string) error {
	image, err := os.ReadFile(path)
	if err != nil {
		a.alert("Ошибка", "Не удалось прочитать файл: "+path)
		return err
	}

	return a.submit(ctx, func(ctx context.Context) error {
		fmt.Fprintln(a.out, "Распознавание...")
		res, err := a.recognition.Recognize(ctx, image)
		if err != nil {
			var netErr *common.NetworkError
			if errors.As(err, &netErr) {
				a.alert("Сервер недоступен", "Не удалось подключиться к серверу распознавания.")
				return err
			}
			return a.alertErr("Ошибка", err)
		}

		if res.Demo {
			a.alert("Сервер недоступен", "Не удалось подключиться к серверу распознавания. Показываем демо-результат.")
		}

		top, ok := res.Top()
		if !ok {
			hint := res.Error
			if hint == "" {
				hint = recognitionHint
			}
			a.alert("Не удалось распознать", hint)
			return nil
		}

		body := []string{top.Description, fmt.Sprintf("Уверенность: %d%%", top.ConfidencePercent())}
		if top.InterestingFact != "" {
			body = append(body, top.InterestingFact)
		}
		a.alert("Распознано: "+top.Name, strings.Join(body, "\n\n"))
		return nil
	})
}

// Health shows whether the recognition model is loaded.
func (a *App) Health(ctx context.Context) error {
	return a.submit(ctx, func(ctx context.Context) error {
		h, err := a.recognition.Health(ctx)
		if err != nil {
			return a.alertErr("Статус модели", err)
		}
		loaded := "нет"
		if h.ModelLoaded {
			loaded = "да"
		}
		a.alert("Статус модели", fmt.Sprintf("Модель загружена: %s\nДоступные классы: %s",
			loaded, strings.Join(h.AvailableClasses, ", ")))
		return nil
	})
}
