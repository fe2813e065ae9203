package handler

import (
	"errors"
	"strconv"
	"strings"
	"unicode"

	"github.com/set-night/travelhub/internal/datasource"
	"github.com/set-night/travelhub/internal/domain"
	"github.com/set-night/travelhub/internal/service"
	"github.com/shopspring/decimal"
)

var errUsage = errors.New("usage")

// commandArgs strips the leading /command (and any @botname) from text.
func commandArgs(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return text
	}
	i := strings.IndexFunc(text, unicode.IsSpace)
	if i < 0 {
		return ""
	}
	return strings.TrimSpace(text[i:])
}

func identifier(s string) (email, mobile string) {
	if strings.Contains(s, "@") {
		return s, ""
	}
	return "", s
}

// parseLogin reads "<email|mobile> <password> [nr]". Remember is on unless "nr" is given.
func parseLogin(args string) (service.LoginForm, error) {
	fields := strings.Fields(args)
	if len(fields) < 2 || len(fields) > 3 {
		return service.LoginForm{}, errUsage
	}
	f := service.LoginForm{Password: fields[1], Remember: true}
	f.Email, f.Mobile = identifier(fields[0])
	if len(fields) == 3 {
		if !strings.EqualFold(fields[2], "nr") {
			return service.LoginForm{}, errUsage
		}
		f.Remember = false
	}
	return f, nil
}

// parseSignup reads "<email|mobile> <password> [role] [nr]".
func parseSignup(args string) (service.SignupForm, error) {
	fields := strings.Fields(args)
	if len(fields) < 2 || len(fields) > 4 {
		return service.SignupForm{}, errUsage
	}
	f := service.SignupForm{Password: fields[1], Remember: true}
	f.Email, f.Mobile = identifier(fields[0])
	for _, extra := range fields[2:] {
		if strings.EqualFold(extra, "nr") {
			f.Remember = false
			continue
		}
		f.Role = domain.Role(strings.ToUpper(extra))
	}
	return f, nil
}

// parseBook reads "<id> [travelers] [name; email[; phone[; requests]]]".
// Segments "date=YYYY-MM-DD" and "pay=<method>" may appear anywhere after the name.
func parseBook(args string) (service.BookingForm, error) {
	head, tail, _ := strings.Cut(args, ";")
	fields := strings.Fields(head)
	if len(fields) == 0 {
		return service.BookingForm{}, errUsage
	}
	f := service.BookingForm{PackageID: fields[0], Travelers: 1}
	rest := fields[1:]
	if len(rest) > 0 {
		if n, err := strconv.Atoi(rest[0]); err == nil {
			f.Travelers = n
			rest = rest[1:]
		}
	}
	f.FullName = strings.Join(rest, " ")

	var positional []string
	if tail != "" {
		for _, seg := range strings.Split(tail, ";") {
			seg = strings.TrimSpace(seg)
			key, value, ok := strings.Cut(seg, "=")
			switch {
			case ok && strings.EqualFold(key, "date"):
				f.TravelDate = strings.TrimSpace(value)
			case ok && strings.EqualFold(key, "pay"):
				f.PaymentMethod = domain.PaymentMethod(strings.ToLower(strings.TrimSpace(value)))
			default:
				positional = append(positional, seg)
			}
		}
	}
	for i, v := range positional {
		switch i {
		case 0:
			f.Email = v
		case 1:
			f.Phone = v
		default:
			if f.SpecialRequests != "" {
				f.SpecialRequests += "; "
			}
			f.SpecialRequests += v
		}
	}
	return f, nil
}

// parsePackage reads "key=value" segments separated by ";".
func parsePackage(args string) (service.PackageInput, error) {
	var in service.PackageInput
	for _, seg := range strings.Split(args, ";") {
		key, value, ok := strings.Cut(seg, "=")
		if !ok {
			if strings.TrimSpace(seg) == "" {
				continue
			}
			return in, errUsage
		}
		value = strings.TrimSpace(value)
		var err error
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "title":
			in.Title = value
		case "destination", "dest":
			in.Destination = value
		case "description", "desc":
			in.Description = value
		case "price":
			in.Price, err = decimal.NewFromString(value)
		case "original":
			var d decimal.Decimal
			if d, err = decimal.NewFromString(value); err == nil {
				in.OriginalPrice = &d
			}
		case "days":
			in.DurationDays, err = strconv.Atoi(value)
		case "max":
			in.MaxTravelers, err = strconv.Atoi(value)
		case "dates":
			in.AvailableDates = splitList(value)
		case "includes":
			in.Includes = splitList(value)
		case "transport":
			in.TransportType = domain.TransportType(strings.ToLower(value))
		case "stay", "accommodation":
			in.AccommodationLevel = domain.AccommodationLevel(strings.ToLower(value))
		case "country":
			in.Country = value
		case "continent":
			in.Continent = value
		case "image":
			in.ImageURL = value
		default:
			return in, errUsage
		}
		if err != nil {
			return in, errUsage
		}
	}
	return in, nil
}

// parseBookingRef reads a single booking reference, with or without "#".
func parseBookingRef(args string) (string, error) {
	fields := strings.Fields(args)
	if len(fields) != 1 {
		return "", errUsage
	}
	id := strings.TrimPrefix(fields[0], "#")
	if id == "" {
		return "", errUsage
	}
	return id, nil
}

// parseProfile reads "key=value" segments into a company profile patch.
func parseProfile(args string) (datasource.Patch, error) {
	patch := datasource.Patch{}
	for _, seg := range strings.Split(args, ";") {
		key, value, ok := strings.Cut(seg, "=")
		if !ok {
			if strings.TrimSpace(seg) == "" {
				continue
			}
			return nil, errUsage
		}
		value = strings.TrimSpace(value)
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "name":
			patch["company_name"] = value
		case "type":
			patch["company_type"] = domain.CompanyType(strings.ToLower(value))
		case "phone":
			patch["contact_phone"] = value
		case "address":
			patch["address"] = value
		case "website", "web":
			patch["website"] = value
		case "description", "desc":
			patch["description"] = value
		case "logo":
			patch["logo_url"] = value
		default:
			return nil, errUsage
		}
	}
	if len(patch) == 0 {
		return nil, errUsage
	}
	return patch, nil
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
