package constant

// 返回给客户端的提示文案，保持与前端约定一致
const (
	APIStatusOK        = "Time Tracker API is working"
	InvalidPath        = "Requested path is invalid"
	InvalidTimeRange   = "Start time is greater than end time"
	InvalidTimeUsed    = "Time used exceeds the logged duration"
	InvalidJWT         = "JWT is invalid"
	RequiredFieldBlank = "Required field is blank"
	InvalidTaskList    = "Task list is either empty or invalid"
	NameIsInvalid      = "Name is invalid"
	InvalidField       = " is either empty or invalid"
	InvalidBody        = "Request body or some field(s) is/are either empty or invalid"
	GenericError       = "Something went wrong"
	GenericSuccess     = "Operation successful"
	AuthSuccessful     = "Authentication is successful"
	AuthUnsuccessful   = "Authentication is unsuccessful"
	SignoutSuccessful  = "Sign out is successful."

	// 针对没有数据可生成洞察的默认评价
	DefaultComment = "There is no data, please fillup something to generate insights."
	GreatComment   = "Well done! You've utilised your time very well. Keep up the good work!"
	OkayComment    = "You've utilised most of your time, but try to remain focused and try a bit harder next time!"
	ImproveComment = "Oh, Uh! It looks like you were not able to focus today. You should try harder next time!"
)

// 数据库操作相关文案
const (
	DataAdded            = "Data added succesfully"
	DataRetrieved        = "Data retrieved succesfully"
	DataUpdated          = "Data updated succesfully"
	DataDeleted          = "Data deleted succesfully"
	UserAlreadyExists    = "User already exists"
	UserDoesntExist      = "User doesn't exist"
	NoDataFound          = "No data found"
	UnableToRetrieveData = "Unable to retrieve data"
	UnableToAddData      = "Unable to add data"
	UnableToUpdateData   = "Unable to update data"
	UnableToDeleteData   = "Unable to delete requested data"
)
