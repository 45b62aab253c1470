package service

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/niklvrr/codybot/internal/domain"
)

var (
	loginPattern     = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9-]*$`)
	shortCodePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

// normalizeLogin снимает пробелы и ведущий @, как в командах бота
func normalizeLogin(login, field string) (string, error) {
	login = strings.TrimPrefix(strings.TrimSpace(login), "@")
	if login == "" {
		return "", fmt.Errorf("%s is required", field)
	}
	if !loginPattern.MatchString(login) {
		return "", fmt.Errorf("%s %q is not a valid login", field, login)
	}
	return login, nil
}

func normalizeRepository(owner, name string) (domain.RepositoryRef, error) {
	ref := domain.RepositoryRef{
		Owner: strings.TrimSpace(owner),
		Name:  strings.TrimSpace(name),
	}
	if ref.Owner == "" || ref.Name == "" {
		return ref, errors.New("owner and name are required")
	}
	return ref, nil
}

func normalizeShortCode(code string) (string, error) {
	code = strings.TrimSpace(code)
	if !shortCodePattern.MatchString(code) {
		return "", fmt.Errorf("short_code %q must match %s", code, shortCodePattern)
	}
	return code, nil
}

func normalizeReviewerStatus(status string) (string, error) {
	switch domain.ReviewerStatus(status) {
	case "", domain.ReviewerPendingReview, domain.ReviewerCompletedReview:
		return status, nil
	}
	return "", fmt.Errorf("unknown reviewer status %q", status)
}
