package proto

const ServiceName = "taskkeeper.TaskKeeper"

// Method names of ServiceName.
const (
	MethodRegister   = "Register"
	MethodLogin      = "Login"
	MethodPing       = "Ping"
	MethodMe         = "Me"
	MethodListTasks  = "ListTasks"
	MethodBoard      = "Board"
	MethodGetTask    = "GetTask"
	MethodCreateTask = "CreateTask"
	MethodUpdateTask = "UpdateTask"
	MethodDeleteTask = "DeleteTask"
)

// FullMethod returns the "/service/method" path of method.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// IsPublic reports whether fullMethod may be called without an access token.
func IsPublic(fullMethod string) bool {
	switch fullMethod {
	case FullMethod(MethodRegister), FullMethod(MethodLogin), FullMethod(MethodPing):
		return true
	}
	return false
}
