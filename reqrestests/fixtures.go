package reqrestests

import (
	"strings"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const (
	usersPath    = "/api/users"
	userPath     = "/api/users/{id}"
	registerPath = "/api/register"
	loginPath    = "/api/login"
	unknownPath  = "/api/unknown"
	resourcePath = "/api/unknown/{id}"

	jsonContentType = "application/json; charset=utf-8"

	// defaultPerPage is the page size the service uses when none is requested.
	defaultPerPage = 6

	// missingResourceID is outside the fixed set of resources.
	missingResourceID = "23"

	validEmail        = "eve.holt@reqres.in"
	registerPassword  = "pistol"
	loginPassword     = "cityslicka"
	unregisteredEmail = "peter@klaven"

	errMissingPassword = "Missing password"
	errMissingEmail    = "Missing email or username"
)

// Marker tags, for selecting subsets of the suite with -tag and -skip-tag.
const (
	tagUsers       = "users"
	tagResources   = "resources"
	tagMutating    = "mutating"
	tagAuth        = "auth"
	tagDelay       = "delay"
	tagSlow        = "slow"
	tagStatusCode  = "statuscode"
	tagContentType = "content_type"
	tagPagination  = "pagination"
	tagSmoke       = "smoke"
	tagCustom      = "custom"
)

// userLane orders the calls that create, change and delete user 2.
const userLane = "user/2"

func object(kvs ...interface{}) ldvalue.Value {
	b := ldvalue.ObjectBuild()
	for i := 0; i+1 < len(kvs); i += 2 {
		b.Set(kvs[i].(string), ldvalue.CopyArbitraryValue(kvs[i+1]))
	}
	return b.Build()
}

func janetWeaver(baseURL string) ldvalue.Value {
	return object(
		"id", 2,
		"email", "janet.weaver@reqres.in",
		"first_name", "Janet",
		"last_name", "Weaver",
		"avatar", strings.TrimSuffix(baseURL, "/")+"/img/faces/2-image.jpg",
	)
}

func resource(id int, name string, year int, color, pantone string) ldvalue.Value {
	return object("id", id, "name", name, "year", year, "color", color, "pantone_value", pantone)
}

var allResources = []ldvalue.Value{
	resource(1, "cerulean", 2000, "#98B2D1", "15-4020"),
	resource(2, "fuchsia rose", 2001, "#C74375", "17-2031"),
	resource(3, "true red", 2002, "#BF1932", "19-1664"),
	resource(4, "aqua sky", 2003, "#7BC4C4", "14-4811"),
	resource(5, "tigerlily", 2004, "#E2583E", "17-1456"),
	resource(6, "blue turquoise", 2005, "#53B0AE", "15-5217"),
}

var (
	createUserBody = object("name", "morpheus", "job", "leader")
	updateUserBody = object("name", "morpheus", "job", "zion resident")

	validRegistration = object("email", validEmail, "password", registerPassword)
	validLogin        = object("email", validEmail, "password", loginPassword)
	missingEmail      = object("password", registerPassword)
	missingPassword   = object("email", validEmail)
	unknownUserOnly   = object("email", unregisteredEmail)
)
