package v1

// BasePath is the route prefix of every v1 endpoint
const BasePath = "/api/v1/cvt"
