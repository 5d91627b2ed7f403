package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Journal Portal",
        "description": "Backend-for-frontend of the attendance and grade journal",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {
            "name": "Session",
            "description": "Sign-in and the client session"
        },
        {
            "name": "Admin",
            "description": "Reference data and schedule management"
        },
        {
            "name": "Teacher",
            "description": "Lesson journal"
        },
        {
            "name": "Student",
            "description": "Own grades and attendance"
        },
        {
            "name": "Schedule",
            "description": "Day and week views"
        },
        {
            "name": "Reports",
            "description": "Spreadsheet reports and statistics"
        },
        {
            "name": "Ops",
            "description": "Health and readiness"
        }
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": [
                    "Ops"
                ],
                "summary": "Liveness",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/ready": {
            "get": {
                "tags": [
                    "Ops"
                ],
                "summary": "Readiness with journal API probe",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "502": {
                        "description": "Journal API unavailable",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/login": {
            "get": {
                "tags": [
                    "Session"
                ],
                "summary": "Sign-in page",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "202": {
                        "description": "Session restoring",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "303": {
                        "description": "See Other",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "from",
                        "in": "query",
                        "type": "string",
                        "required": false
                    }
                ]
            }
        },
        "/login/{role}": {
            "post": {
                "tags": [
                    "Session"
                ],
                "summary": "Sign in",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Invalid payload",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "401": {
                        "description": "Invalid credentials",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "role",
                        "in": "path",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/Credentials"
                        }
                    }
                ]
            }
        },
        "/logout": {
            "post": {
                "tags": [
                    "Session"
                ],
                "summary": "Sign out",
                "responses": {
                    "303": {
                        "description": "See Other",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/session": {
            "get": {
                "tags": [
                    "Session"
                ],
                "summary": "Current session",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/session/identity": {
            "patch": {
                "tags": [
                    "Session"
                ],
                "summary": "Update profile",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/IdentityPatch"
                        }
                    }
                ]
            }
        },
        "/session/password": {
            "post": {
                "tags": [
                    "Session"
                ],
                "summary": "Change password",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ChangePasswordForm"
                        }
                    }
                ]
            }
        },
        "/setup/admin": {
            "post": {
                "tags": [
                    "Session"
                ],
                "summary": "Register the first administrator",
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/RegisterAdminForm"
                        }
                    }
                ]
            }
        },
        "/admin": {
            "get": {
                "tags": [
                    "Admin"
                ],
                "summary": "Admin dashboard",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/admin/{entity}": {
            "get": {
                "tags": [
                    "Admin"
                ],
                "summary": "List an admin collection",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "entity",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ]
            },
            "post": {
                "tags": [
                    "Admin"
                ],
                "summary": "Create an admin record",
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "entity",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ]
            }
        },
        "/admin/{entity}/{id}": {
            "put": {
                "tags": [
                    "Admin"
                ],
                "summary": "Update an admin record",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "entity",
                        "in": "path",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ]
            },
            "delete": {
                "tags": [
                    "Admin"
                ],
                "summary": "Delete an admin record",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "entity",
                        "in": "path",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ]
            }
        },
        "/admin/groups/{id}/import-students": {
            "post": {
                "tags": [
                    "Admin"
                ],
                "summary": "Import students from a spreadsheet",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "file",
                        "in": "formData",
                        "type": "file",
                        "required": true
                    }
                ]
            }
        },
        "/admin/semesters/{id}/activate": {
            "post": {
                "tags": [
                    "Admin"
                ],
                "summary": "Activate a semester",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ]
            }
        },
        "/admin/schedule-management": {
            "get": {
                "tags": [
                    "Admin"
                ],
                "summary": "Schedule templates",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "semesterId",
                        "in": "query",
                        "type": "string",
                        "required": false
                    },
                    {
                        "name": "teacherId",
                        "in": "query",
                        "type": "string",
                        "required": false
                    },
                    {
                        "name": "groupId",
                        "in": "query",
                        "type": "string",
                        "required": false
                    },
                    {
                        "name": "subjectId",
                        "in": "query",
                        "type": "string",
                        "required": false
                    }
                ]
            },
            "post": {
                "tags": [
                    "Admin"
                ],
                "summary": "Create a schedule template",
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ScheduleForm"
                        }
                    }
                ]
            }
        },
        "/admin/schedule-management/{id}": {
            "put": {
                "tags": [
                    "Admin"
                ],
                "summary": "Update a schedule template",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ScheduleForm"
                        }
                    }
                ]
            },
            "delete": {
                "tags": [
                    "Admin"
                ],
                "summary": "Delete a schedule template",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ]
            }
        },
        "/admin/schedule-instances/{id}": {
            "put": {
                "tags": [
                    "Admin"
                ],
                "summary": "Edit a lesson instance",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ]
            }
        },
        "/admin/schedule-instances/{id}/cancel": {
            "post": {
                "tags": [
                    "Admin"
                ],
                "summary": "Cancel a lesson instance",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ]
            }
        },
        "/admin/schedule": {
            "get": {
                "tags": [
                    "Schedule"
                ],
                "summary": "All lessons by day or week",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "view",
                        "in": "query",
                        "type": "string",
                        "required": false
                    },
                    {
                        "name": "date",
                        "in": "query",
                        "type": "string",
                        "required": false
                    }
                ]
            }
        },
        "/teacher": {
            "get": {
                "tags": [
                    "Teacher"
                ],
                "summary": "Teacher dashboard",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/teacher/schedule": {
            "get": {
                "tags": [
                    "Schedule"
                ],
                "summary": "Own lessons by day or week",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "view",
                        "in": "query",
                        "type": "string",
                        "required": false
                    },
                    {
                        "name": "date",
                        "in": "query",
                        "type": "string",
                        "required": false
                    }
                ]
            }
        },
        "/teacher/lesson/{lessonId}": {
            "get": {
                "tags": [
                    "Teacher"
                ],
                "summary": "Open a lesson",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "lessonId",
                        "in": "path",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "reload",
                        "in": "query",
                        "type": "boolean",
                        "required": false
                    }
                ]
            },
            "delete": {
                "tags": [
                    "Teacher"
                ],
                "summary": "Leave a lesson",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                },
                "parameters": [
                    {
                        "name": "lessonId",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ]
            }
        },
        "/teacher/lesson/{lessonId}/attendance/{studentId}": {
            "post": {
                "tags": [
                    "Teacher"
                ],
                "summary": "Edit one student's attendance",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "lessonId",
                        "in": "path",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "studentId",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ]
            }
        },
        "/teacher/lesson/{lessonId}/mark-all": {
            "post": {
                "tags": [
                    "Teacher"
                ],
                "summary": "Mark every student present or absent",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "lessonId",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ]
            }
        },
        "/teacher/lesson/{lessonId}/grades/{studentId}": {
            "put": {
                "tags": [
                    "Teacher"
                ],
                "summary": "Edit one student's grade",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "lessonId",
                        "in": "path",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "studentId",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ]
            }
        },
        "/teacher/lesson/{lessonId}/save": {
            "post": {
                "tags": [
                    "Teacher"
                ],
                "summary": "Save attendance and grades",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "Save already running",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "lessonId",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ]
            }
        },
        "/student": {
            "get": {
                "tags": [
                    "Student"
                ],
                "summary": "Student dashboard",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/student/schedule": {
            "get": {
                "tags": [
                    "Schedule"
                ],
                "summary": "Own lessons by day or week",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "view",
                        "in": "query",
                        "type": "string",
                        "required": false
                    },
                    {
                        "name": "date",
                        "in": "query",
                        "type": "string",
                        "required": false
                    }
                ]
            }
        },
        "/student/my-grades": {
            "get": {
                "tags": [
                    "Student"
                ],
                "summary": "My grades",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "semesterId",
                        "in": "query",
                        "type": "string",
                        "required": false
                    },
                    {
                        "name": "subjectId",
                        "in": "query",
                        "type": "string",
                        "required": false
                    }
                ]
            }
        },
        "/student/my-grades/export": {
            "get": {
                "tags": [
                    "Student"
                ],
                "summary": "Export my grades",
                "responses": {
                    "200": {
                        "description": "File"
                    }
                },
                "parameters": [
                    {
                        "name": "format",
                        "in": "query",
                        "type": "string",
                        "required": false
                    },
                    {
                        "name": "semesterId",
                        "in": "query",
                        "type": "string",
                        "required": false
                    },
                    {
                        "name": "subjectId",
                        "in": "query",
                        "type": "string",
                        "required": false
                    }
                ],
                "produces": [
                    "text/csv",
                    "application/pdf"
                ]
            }
        },
        "/student/my-attendance": {
            "get": {
                "tags": [
                    "Student"
                ],
                "summary": "My attendance",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "semesterId",
                        "in": "query",
                        "type": "string",
                        "required": false
                    },
                    {
                        "name": "subjectId",
                        "in": "query",
                        "type": "string",
                        "required": false
                    }
                ]
            }
        },
        "/student/stats": {
            "get": {
                "tags": [
                    "Student"
                ],
                "summary": "My statistics",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "semesterId",
                        "in": "query",
                        "type": "string",
                        "required": false
                    }
                ]
            }
        },
        "/admin/reports/attendance": {
            "get": {
                "tags": [
                    "Reports"
                ],
                "summary": "Download the attendance spreadsheet",
                "responses": {
                    "200": {
                        "description": "File"
                    }
                },
                "parameters": [
                    {
                        "name": "groupId",
                        "in": "query",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "subjectId",
                        "in": "query",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "semesterId",
                        "in": "query",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "kind",
                        "in": "query",
                        "type": "string",
                        "required": false
                    }
                ],
                "produces": [
                    "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
                ]
            }
        },
        "/admin/reports/grades": {
            "get": {
                "tags": [
                    "Reports"
                ],
                "summary": "Download the grades spreadsheet",
                "responses": {
                    "200": {
                        "description": "File"
                    }
                },
                "parameters": [
                    {
                        "name": "groupId",
                        "in": "query",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "subjectId",
                        "in": "query",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "semesterId",
                        "in": "query",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "kind",
                        "in": "query",
                        "type": "string",
                        "required": false
                    }
                ],
                "produces": [
                    "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
                ]
            }
        },
        "/admin/reports/group-attendance": {
            "get": {
                "tags": [
                    "Reports"
                ],
                "summary": "Group attendance statistics",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "groupId",
                        "in": "query",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "semesterId",
                        "in": "query",
                        "type": "string",
                        "required": false
                    },
                    {
                        "name": "subjectId",
                        "in": "query",
                        "type": "string",
                        "required": false
                    }
                ]
            }
        },
        "/admin/reports/group-grades": {
            "get": {
                "tags": [
                    "Reports"
                ],
                "summary": "Group grade statistics",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "groupId",
                        "in": "query",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "semesterId",
                        "in": "query",
                        "type": "string",
                        "required": false
                    },
                    {
                        "name": "subjectId",
                        "in": "query",
                        "type": "string",
                        "required": false
                    }
                ]
            }
        },
        "/admin/reports/students/{studentId}": {
            "get": {
                "tags": [
                    "Reports"
                ],
                "summary": "Student analytics",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "studentId",
                        "in": "path",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "semesterId",
                        "in": "query",
                        "type": "string",
                        "required": false
                    }
                ]
            }
        },
        "/teacher/reports/attendance": {
            "get": {
                "tags": [
                    "Reports"
                ],
                "summary": "Download the attendance spreadsheet",
                "responses": {
                    "200": {
                        "description": "File"
                    }
                },
                "parameters": [
                    {
                        "name": "groupId",
                        "in": "query",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "subjectId",
                        "in": "query",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "semesterId",
                        "in": "query",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "kind",
                        "in": "query",
                        "type": "string",
                        "required": false
                    }
                ],
                "produces": [
                    "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
                ]
            }
        },
        "/teacher/reports/grades": {
            "get": {
                "tags": [
                    "Reports"
                ],
                "summary": "Download the grades spreadsheet",
                "responses": {
                    "200": {
                        "description": "File"
                    }
                },
                "parameters": [
                    {
                        "name": "groupId",
                        "in": "query",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "subjectId",
                        "in": "query",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "semesterId",
                        "in": "query",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "kind",
                        "in": "query",
                        "type": "string",
                        "required": false
                    }
                ],
                "produces": [
                    "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
                ]
            }
        },
        "/teacher/reports/group-attendance": {
            "get": {
                "tags": [
                    "Reports"
                ],
                "summary": "Group attendance statistics",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "groupId",
                        "in": "query",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "semesterId",
                        "in": "query",
                        "type": "string",
                        "required": false
                    },
                    {
                        "name": "subjectId",
                        "in": "query",
                        "type": "string",
                        "required": false
                    }
                ]
            }
        },
        "/teacher/reports/group-grades": {
            "get": {
                "tags": [
                    "Reports"
                ],
                "summary": "Group grade statistics",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "groupId",
                        "in": "query",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "semesterId",
                        "in": "query",
                        "type": "string",
                        "required": false
                    },
                    {
                        "name": "subjectId",
                        "in": "query",
                        "type": "string",
                        "required": false
                    }
                ]
            }
        },
        "/teacher/reports/students/{studentId}": {
            "get": {
                "tags": [
                    "Reports"
                ],
                "summary": "Student analytics",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "studentId",
                        "in": "path",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "semesterId",
                        "in": "query",
                        "type": "string",
                        "required": false
                    }
                ]
            }
        },
        "/admin/reports/semesters/{semesterId}": {
            "get": {
                "tags": [
                    "Reports"
                ],
                "summary": "Semester analytics",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "semesterId",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ]
            }
        }
    },
    "definitions": {
        "Credentials": {
            "type": "object",
            "properties": {
                "email": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "groupName": {
                    "type": "string"
                },
                "password": {
                    "type": "string"
                }
            },
            "required": [
                "password"
            ]
        },
        "IdentityPatch": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "studentNumber": {
                    "type": "string"
                }
            }
        },
        "ChangePasswordForm": {
            "type": "object",
            "properties": {
                "currentPassword": {
                    "type": "string"
                },
                "newPassword": {
                    "type": "string"
                }
            },
            "required": [
                "currentPassword",
                "newPassword"
            ]
        },
        "RegisterAdminForm": {
            "type": "object",
            "properties": {
                "name": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                },
                "password": {
                    "type": "string"
                }
            },
            "required": [
                "name",
                "email",
                "password"
            ]
        },
        "ScheduleForm": {
            "type": "object",
            "properties": {
                "subject": {
                    "type": "string"
                },
                "teacher": {
                    "type": "string"
                },
                "groups": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "semester": {
                    "type": "string"
                },
                "dayOfWeek": {
                    "type": "integer"
                },
                "weeksOfMonth": {
                    "type": "array",
                    "items": {
                        "type": "integer"
                    }
                },
                "startTime": {
                    "type": "string"
                },
                "endTime": {
                    "type": "string"
                },
                "lessonType": {
                    "type": "string"
                },
                "classroom": {
                    "type": "string"
                },
                "duration": {
                    "type": "integer"
                },
                "isRecurring": {
                    "type": "boolean"
                }
            },
            "required": [
                "subject",
                "teacher",
                "groups",
                "semester",
                "dayOfWeek",
                "weeksOfMonth",
                "startTime",
                "endTime",
                "lessonType",
                "classroom"
            ]
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "status": {
                    "type": "integer"
                }
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "object"
                },
                "error": {
                    "$ref": "#/definitions/APIError"
                },
                "meta": {
                    "type": "object"
                }
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
