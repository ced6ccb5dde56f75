package internal

const COOKIE_ACCESS_TOKEN_NAME = "paczusie_access_token"
