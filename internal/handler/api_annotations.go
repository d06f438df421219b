// @title           vite API
// @version         1.0
// @description     Reversible URL and text shortener. Errors caused by the input are returned with status 200 and an "error" field.
// @BasePath        /
package handler
