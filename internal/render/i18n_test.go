package render

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/text/language"
)

func TestResolveTag_QueryParam(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?lang=pt-BR", nil)
	r.Header.Set("Accept-Language", "en-US")

	tag, persist := ResolveTag(r)
	if tag != language.BrazilianPortuguese {
		t.Errorf("tag = %s, want pt-BR", tag)
	}
	if !persist {
		t.Error("query language should be persisted")
	}
}

func TestResolveTag_Cookie(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: LangCookieName, Value: "pt-BR"})
	r.Header.Set("Accept-Language", "en")

	tag, persist := ResolveTag(r)
	if tag != language.BrazilianPortuguese || persist {
		t.Errorf("tag = %s, persist = %v", tag, persist)
	}
}

func TestResolveTag_AcceptLanguage(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Accept-Language", "pt-BR,pt;q=0.9,en;q=0.5")

	if tag, _ := ResolveTag(r); tag != language.BrazilianPortuguese {
		t.Errorf("tag = %s, want pt-BR", tag)
	}
}

func TestResolveTag_DefaultsToEnglish(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if tag, _ := ResolveTag(r); tag != language.English {
		t.Errorf("tag = %s, want en", tag)
	}

	r.Header.Set("Accept-Language", "ja-JP")
	if tag, _ := ResolveTag(r); tag != language.English {
		t.Errorf("unsupported language: tag = %s, want en", tag)
	}
}

func TestSetLanguageCookie(t *testing.T) {
	w := httptest.NewRecorder()
	SetLanguageCookie(w, language.BrazilianPortuguese)

	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != LangCookieName || cookies[0].Value != "pt-BR" {
		t.Errorf("cookies = %+v", cookies)
	}
}

func TestLocalizer_Numbers(t *testing.T) {
	if got := NewLocalizer(language.English).N(1234567); got != "1,234,567" {
		t.Errorf("en = %q", got)
	}
	if got := NewLocalizer(language.BrazilianPortuguese).N(1234567); got != "1.234.567" {
		t.Errorf("pt-BR = %q", got)
	}
}

func TestCatalogsHaveSameKeys(t *testing.T) {
	en := catalog[language.English]
	pt := catalog[language.BrazilianPortuguese]
	for k := range en {
		if _, ok := pt[k]; !ok {
			t.Errorf("pt-BR missing key %q", k)
		}
	}
	for k := range pt {
		if _, ok := en[k]; !ok {
			t.Errorf("en missing key %q", k)
		}
	}
}
