// Package i18n holds the user-facing messages in every supported language.
package i18n

import (
	"net/http"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys.
const (
	UserExists       = "user_exists"
	Registered       = "registered"
	LoggedIn         = "logged_in"
	BadCredentials   = "bad_credentials"
	LoggedOut        = "logged_out"
	LoginRequired    = "login_required"
	NotFound         = "not_found"
	Forbidden        = "forbidden"
	FillAllFields    = "fill_all_fields"
	PasswordTooLong  = "password_too_long"
	ArticleCreated   = "article_created"
	ArticleUpdated   = "article_updated"
	ArticleDeleted   = "article_deleted"
	ArticleSaveError = "article_save_error"
	ArticleEditError = "article_edit_error"
	ArticleDelError  = "article_delete_error"
	CommentAdded     = "comment_added"
	CommentUpdated   = "comment_updated"
	CommentDeleted   = "comment_deleted"
	CommentSaveError = "comment_save_error"
	CommentEditError = "comment_edit_error"
	CommentDelError  = "comment_delete_error"
	RegisterError    = "register_error"
	InternalError    = "internal_error"
)

var entries = map[language.Tag]map[string]string{
	language.English: {
		UserExists:       "A user with this name already exists",
		Registered:       "Registration successful, you can now log in",
		LoggedIn:         "You are logged in",
		BadCredentials:   "Invalid username or password",
		LoggedOut:        "You have logged out",
		LoginRequired:    "Please log in to access this page",
		NotFound:         "Page not found",
		Forbidden:        "You can only change your own comments",
		FillAllFields:    "Please fill in all fields",
		PasswordTooLong:  "The password must not be longer than 72 bytes",
		ArticleCreated:   "Article published",
		ArticleUpdated:   "Article updated",
		ArticleDeleted:   "Article deleted",
		ArticleSaveError: "An error occurred while adding the article",
		ArticleEditError: "An error occurred while editing the article",
		ArticleDelError:  "An error occurred while deleting the article",
		CommentAdded:     "Comment added",
		CommentUpdated:   "Comment updated",
		CommentDeleted:   "Comment deleted",
		CommentSaveError: "An error occurred while adding the comment",
		CommentEditError: "An error occurred while editing the comment",
		CommentDelError:  "An error occurred while deleting the comment",
		RegisterError:    "An error occurred during registration",
		InternalError:    "Internal server error",
	},
	language.Russian: {
		UserExists:       "Пользователь с таким именем уже существует",
		Registered:       "Регистрация прошла успешно, теперь можно войти",
		LoggedIn:         "Вы вошли в систему",
		BadCredentials:   "Неверное имя пользователя или пароль",
		LoggedOut:        "Вы вышли из системы",
		LoginRequired:    "Пожалуйста, войдите, чтобы открыть эту страницу",
		NotFound:         "Страница не найдена",
		Forbidden:        "Можно изменять только свои комментарии",
		FillAllFields:    "Пожалуйста, заполните все поля",
		PasswordTooLong:  "Пароль не должен быть длиннее 72 байт",
		ArticleCreated:   "Статья опубликована",
		ArticleUpdated:   "Статья обновлена",
		ArticleDeleted:   "Статья удалена",
		ArticleSaveError: "При добавлении статьи произошла ошибка",
		ArticleEditError: "При редактировании статьи произошла ошибка",
		ArticleDelError:  "При удалении статьи произошла ошибка",
		CommentAdded:     "Комментарий добавлен",
		CommentUpdated:   "Комментарий обновлён",
		CommentDeleted:   "Комментарий удалён",
		CommentSaveError: "При добавлении комментария произошла ошибка",
		CommentEditError: "При редактировании комментария произошла ошибка",
		CommentDelError:  "При удалении комментария произошла ошибка",
		RegisterError:    "При регистрации произошла ошибка",
		InternalError:    "Внутренняя ошибка сервера",
	},
}

// Catalog resolves message keys for the request's preferred language.
type Catalog struct {
	cat     *catalog.Builder
	tags    []language.Tag
	matcher language.Matcher
}

// New builds the catalog. defaultLocale is used when Accept-Language matches
// nothing; an unsupported locale falls back to English.
func New(defaultLocale string) *Catalog {
	cat := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, msgs := range entries {
		for key, msg := range msgs {
			// keys and messages are static; SetString only fails on malformed tags
			_ = cat.SetString(tag, key, msg)
		}
	}

	fallback := language.English
	if tag, err := language.Parse(defaultLocale); err == nil {
		if _, idx, conf := language.NewMatcher(Supported()).Match(tag); conf != language.No {
			fallback = Supported()[idx]
		}
	}

	// the matcher returns tags[0] when nothing matches
	tags := []language.Tag{fallback}
	for _, t := range Supported() {
		if t != fallback {
			tags = append(tags, t)
		}
	}
	return &Catalog{cat: cat, tags: tags, matcher: language.NewMatcher(tags)}
}

// Supported lists the languages with a full message set.
func Supported() []language.Tag {
	return []language.Tag{language.English, language.Russian}
}

// IsSupported reports whether locale names a language with a full message set.
// Regional variants such as "en-GB" count as their base language.
func IsSupported(locale string) bool {
	tag, err := language.Parse(locale)
	if err != nil {
		return false
	}
	base, _ := tag.Base()
	for _, t := range Supported() {
		if b, _ := t.Base(); b == base {
			return true
		}
	}
	return false
}

// Default is the language used when a request expresses no usable preference.
func (c *Catalog) Default() language.Tag {
	return c.tags[0]
}

// Language picks the best supported language for an Accept-Language header.
func (c *Catalog) Language(acceptLanguage string) language.Tag {
	prefs, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(prefs) == 0 {
		return c.tags[0]
	}
	_, idx, conf := c.matcher.Match(prefs...)
	if conf == language.No {
		return c.tags[0]
	}
	return c.tags[idx]
}

// Printer returns a message printer for the given language.
func (c *Catalog) Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag, message.Catalog(c.cat))
}

// Text translates key for the language negotiated from r.
func (c *Catalog) Text(r *http.Request, key string, args ...interface{}) string {
	return c.Printer(c.Language(r.Header.Get("Accept-Language"))).Sprintf(key, args...)
}
