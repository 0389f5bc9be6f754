// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

// statusClasses maps the first digit of a status code to its description.
var statusClasses = map[byte]string{
	'2': "Successful",
	'3': "Not there",
	'4': "Forbidden",
	'5': "Broke server",
}

// StatusDescription returns the description of a status code's class, or
// an empty string for codes outside 2xx-5xx.
func StatusDescription(code string) string {
	if code == "" {
		return ""
	}
	return statusClasses[code[0]]
}

// MethodLabel returns the verb used in the stub description of the 200 response.
func MethodLabel(method string) string {
	switch method {
	case "put":
		return "Created"
	case "delete":
		return "Deleted"
	case "post":
		return "Updated"
	default:
		return "Fetched"
	}
}
